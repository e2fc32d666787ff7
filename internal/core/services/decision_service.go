package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/baycast/searchgate/config"
	"github.com/baycast/searchgate/internal/cache"
	"github.com/baycast/searchgate/internal/core/domain"
	"github.com/baycast/searchgate/internal/core/ports"
	"github.com/baycast/searchgate/internal/logger"
)

const (
	decisionSystemPrompt = "You are a classifier. Determine if a web search is necessary to answer the user's query. " +
		"Respond with a JSON object containing the keys \"web_search_needed\" (boolean) and \"reason\" (string). " +
		"Respond with JSON only, no other text."

	decisionHumanTemplate = "Determine if a web search is necessary to answer the following query: '%s'"

	arxivDecisionTemplate = "Given the query: '%s', determine if it is appropriate to search ArXiv for relevant " +
		"information. Return 'yes' if it is appropriate, otherwise return 'no'."

	arxivQueryTemplate = "Generate a search query for ArXiv based on the following user query: '%s'. " +
		"Ensure the query is specific and relevant to the user's query."
)

// DecisionService decides whether a query warrants live retrieval. It
// layers a fast keyword heuristic in front of an LLM classifier and
// caches results in the caller-supplied per-session cache.
type DecisionService struct {
	llm       ports.LLMPort
	heuristic *KeywordHeuristic
	config    *config.DecisionConfig
	logger    logger.Logger
}

// NewDecisionService creates a new DecisionService
func NewDecisionService(llm ports.LLMPort, heuristic *KeywordHeuristic, cfg *config.DecisionConfig, log logger.Logger) *DecisionService {
	return &DecisionService{
		llm:       llm,
		heuristic: heuristic,
		config:    cfg,
		logger:    log,
	}
}

// ShouldWebSearch decides whether answering query requires a web
// search, consulting the cache, then the keyword heuristic, then the
// LLM classifier. The heuristic short-circuits only to "yes"; a cached
// "no" always comes from the classifier. A transport failure from the
// LLM propagates to the caller. An unparseable classifier answer is
// logged and replaced by the configured default.
func (s *DecisionService) ShouldWebSearch(ctx context.Context, query string, decisions *cache.DecisionCache) (bool, error) {
	if needed, ok := decisions.Get(query); ok {
		s.logger.Debug("Decision cache hit", "query", query, "web_search_needed", needed)
		return needed, nil
	}

	if s.heuristic.Decide(query) {
		decisions.Put(query, true)
		return true, nil
	}

	raw, err := s.llm.GenerateResponse(ctx, decisionSystemPrompt, fmt.Sprintf(decisionHumanTemplate, query))
	if err != nil {
		return false, fmt.Errorf("web search decision failed: %w", err)
	}

	needed := s.config.ParseFailureDefault
	decision, err := parseDecision(raw)
	if err != nil {
		s.logger.Warn("Failed to parse web search decision, using default",
			"error", err, "default", needed, "response", raw)
	} else {
		needed = decision.WebSearchNeeded
		s.logger.Info("Web search decision", "web_search_needed", needed, "reason", decision.Reason)
	}

	decisions.Put(query, needed)
	return needed, nil
}

// ShouldSearchArxiv asks the LLM whether the query is worth a scholarly
// ArXiv lookup
func (s *DecisionService) ShouldSearchArxiv(ctx context.Context, query string) (bool, error) {
	answer, err := s.llm.GenerateResponse(ctx, "", fmt.Sprintf(arxivDecisionTemplate, query))
	if err != nil {
		return false, fmt.Errorf("arxiv decision failed: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes"), nil
}

// GenerateArxivQuery rewrites the user's query into a focused ArXiv
// search query
func (s *DecisionService) GenerateArxivQuery(ctx context.Context, query string) (string, error) {
	rewritten, err := s.llm.GenerateResponse(ctx, "", fmt.Sprintf(arxivQueryTemplate, query))
	if err != nil {
		return "", fmt.Errorf("arxiv query generation failed: %w", err)
	}
	return strings.TrimSpace(rewritten), nil
}

// parseDecision extracts a SearchDecision from the raw LLM response.
// Models routinely wrap JSON in markdown fences or surround it with
// prose, so the parser works on the outermost {...} span.
func parseDecision(raw string) (*domain.SearchDecision, error) {
	text := strings.TrimSpace(raw)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var decision domain.SearchDecision
	if err := json.Unmarshal([]byte(text[start:end+1]), &decision); err != nil {
		return nil, fmt.Errorf("malformed decision JSON: %w", err)
	}
	return &decision, nil
}
