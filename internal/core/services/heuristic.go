package services

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/baycast/searchgate/config"
	"github.com/baycast/searchgate/internal/logger"
)

// KeywordHeuristic is a fast deterministic guess at whether a query
// needs live web retrieval. A trigger keyword anywhere in the query
// means "yes"; a greeting pattern means "no" without consulting
// anything else. The heuristic can only short-circuit the decision
// pipeline to "yes" — its "no" is a guess that still gets checked by
// the classifier.
type KeywordHeuristic struct {
	keywords  []string
	greetings []*regexp.Regexp
	memo      *lru.Cache[string, bool]
	logger    logger.Logger
}

// NewKeywordHeuristic builds the heuristic from the configured trigger
// keywords and greeting patterns
func NewKeywordHeuristic(cfg *config.DecisionConfig, log logger.Logger) (*KeywordHeuristic, error) {
	greetings := make([]*regexp.Regexp, 0, len(cfg.GreetingPatterns))
	for _, pattern := range cfg.GreetingPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid greeting pattern %q: %w", pattern, err)
		}
		greetings = append(greetings, re)
	}

	size := cfg.HeuristicCacheSize
	if size <= 0 {
		size = 100
	}
	memo, err := lru.New[string, bool](size)
	if err != nil {
		return nil, err
	}

	return &KeywordHeuristic{
		keywords:  cfg.TriggerKeywords,
		greetings: greetings,
		memo:      memo,
		logger:    log,
	}, nil
}

// Decide returns true when the query obviously needs a web search.
// Results are memoized per exact query text, so repeated queries never
// recompute.
func (h *KeywordHeuristic) Decide(query string) bool {
	if needed, ok := h.memo.Get(query); ok {
		return needed
	}

	needed := h.decide(query)
	h.memo.Add(query, needed)
	return needed
}

func (h *KeywordHeuristic) decide(query string) bool {
	lowered := strings.ToLower(query)

	for _, keyword := range h.keywords {
		if strings.Contains(lowered, keyword) {
			h.logger.Debug("Search intent detected", "keyword", keyword)
			return true
		}
	}

	// Obviously conversational input never needs a search
	for _, greeting := range h.greetings {
		if greeting.MatchString(lowered) {
			return false
		}
	}

	return false
}
