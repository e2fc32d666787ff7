package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/baycast/searchgate/config"
	"github.com/baycast/searchgate/internal/core/ports"
	"github.com/baycast/searchgate/internal/logger"
)

// SearchExecutor runs queries against the search-engine capability and
// turns its raw text output into a bounded list of result entries.
// Outbound calls are rate-limited so a chatty caller cannot hammer the
// provider.
type SearchExecutor struct {
	engine   ports.SearchEnginePort
	rewriter ports.LLMPort // optional secondary LLM for query rewriting
	limiter  *rate.Limiter
	logger   logger.Logger
}

// NewSearchExecutor creates a SearchExecutor. rewriter may be nil, in
// which case GenerateSearchQuery passes the user query through
// unchanged.
func NewSearchExecutor(engine ports.SearchEnginePort, rewriter ports.LLMPort, cfg *config.WebSearchConfig, log logger.Logger) *SearchExecutor {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.BurstSize
	if burst < 1 {
		burst = 1
	}

	return &SearchExecutor{
		engine:   engine,
		rewriter: rewriter,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		logger:   log,
	}
}

// Search runs the query against the search engine and returns up to
// numResults formatted result entries in document order (no ranking).
// A provider failure is returned as an error; callers that prefer the
// old collapse-to-empty behavior should use SearchOrEmpty.
func (e *SearchExecutor) Search(ctx context.Context, query string, numResults int) ([]string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	raw, err := e.engine.Run(ctx, query)
	if err != nil {
		e.logger.Error("Web search failed", "query", query, "error", err)
		return nil, fmt.Errorf("web search for %q failed: %w", query, err)
	}

	entries := splitEntries(raw)
	if numResults > 0 && len(entries) > numResults {
		entries = entries[:numResults]
	}

	e.logger.Info("Web search completed", "query", query, "results_count", len(entries))
	return entries, nil
}

// SearchOrEmpty is Search with provider failures absorbed into an
// empty result list. An empty list therefore means "search failed or
// returned nothing", indistinguishably.
func (e *SearchExecutor) SearchOrEmpty(ctx context.Context, query string, numResults int) []string {
	entries, err := e.Search(ctx, query, numResults)
	if err != nil {
		return []string{}
	}
	return entries
}

// GenerateSearchQuery rewrites the user's query into a short, focused
// web search query using the secondary LLM. On any failure the original
// query is returned along with the error so callers can still search.
func (e *SearchExecutor) GenerateSearchQuery(ctx context.Context, userQuery string) (string, error) {
	if e.rewriter == nil {
		return userQuery, nil
	}

	prompt := fmt.Sprintf(
		"Given the user's query: '%s', generate a search query to find the most relevant "+
			"and up-to-date information online. The search query should be short and focused. "+
			"Return only the search query.",
		userQuery,
	)

	rewritten, err := e.rewriter.GenerateResponse(ctx, "", prompt)
	if err != nil {
		e.logger.Error("Failed to generate search query", "error", err)
		return userQuery, err
	}

	rewritten = strings.Trim(strings.TrimSpace(rewritten), `"`)
	if rewritten == "" {
		return userQuery, nil
	}

	e.logger.Info("Generated search query", "user_query", userQuery, "search_query", rewritten)
	return rewritten, nil
}

// splitEntries splits a raw search blob into entries. Consecutive
// non-blank lines form one entry; a blank line closes the current
// entry.
func splitEntries(raw string) []string {
	var entries []string
	var buffer []string

	flush := func() {
		if len(buffer) > 0 {
			entries = append(entries, strings.Join(buffer, "\n"))
			buffer = buffer[:0]
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		buffer = append(buffer, line)
	}
	flush()

	return entries
}
