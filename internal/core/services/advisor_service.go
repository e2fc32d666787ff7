package services

import (
	"context"

	"github.com/baycast/searchgate/config"
	"github.com/baycast/searchgate/internal/core/domain"
	"github.com/baycast/searchgate/internal/logger"
)

// AdvisorService runs the full decide-search-cite pipeline for a query:
// decide whether retrieval is warranted, rewrite the query, search, and
// format the results into citations.
type AdvisorService struct {
	decisions *DecisionService
	executor  *SearchExecutor
	config    *config.WebSearchConfig
	logger    logger.Logger
}

// NewAdvisorService creates a new AdvisorService
func NewAdvisorService(decisions *DecisionService, executor *SearchExecutor, cfg *config.WebSearchConfig, log logger.Logger) *AdvisorService {
	return &AdvisorService{
		decisions: decisions,
		executor:  executor,
		config:    cfg,
		logger:    log,
	}
}

// Advise decides whether the query needs a web search and, when it
// does, performs it and attaches citations to the result. A search
// failure yields a result with no entries rather than an error; a
// failed decision (LLM transport error) is returned to the caller.
func (s *AdvisorService) Advise(ctx context.Context, session *domain.Session, query string) (*domain.RetrievalResult, error) {
	needed, err := s.decisions.ShouldWebSearch(ctx, query, session.Cache)
	if err != nil {
		return nil, err
	}

	result := &domain.RetrievalResult{
		Query:           query,
		SearchPerformed: needed,
	}
	if !needed {
		s.logger.Debug("Skipping web search", "session_id", session.ID, "query", query)
		return result, nil
	}

	searchQuery, err := s.executor.GenerateSearchQuery(ctx, query)
	if err != nil {
		// GenerateSearchQuery already fell back to the original query
		s.logger.Warn("Search query rewrite failed, using original query", "error", err)
	}
	result.SearchQuery = searchQuery

	entries := s.executor.SearchOrEmpty(ctx, searchQuery, s.config.MaxResults)
	result.Entries = entries
	if len(entries) == 0 {
		s.logger.Warn("No search results found", "session_id", session.ID, "search_query", searchQuery)
		return result, nil
	}

	result.Citations = Citations(entries)
	result.CitationBlock, result.CitationGuide = FormatCitations(entries)
	return result, nil
}
