package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baycast/searchgate/config"
	"github.com/baycast/searchgate/internal/core/domain"
)

func newTestAdvisor(t *testing.T, llm *fakeLLM, engine *fakeEngine) (*AdvisorService, *domain.Session) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.WebSearch.RequestsPerSecond = 1000

	heuristic, err := NewKeywordHeuristic(&cfg.Decision, testLogger())
	require.NoError(t, err)
	decisions := NewDecisionService(llm, heuristic, &cfg.Decision, testLogger())
	executor := NewSearchExecutor(engine, nil, &cfg.WebSearch, testLogger())
	advisor := NewAdvisorService(decisions, executor, &cfg.WebSearch, testLogger())

	session, err := domain.NewSession(cfg.Decision.CacheSize)
	require.NoError(t, err)

	return advisor, session
}

func TestAdviseSkipsSearchWhenNotNeeded(t *testing.T) {
	llm := &fakeLLM{response: `{"web_search_needed": false, "reason": "general knowledge"}`}
	engine := &fakeEngine{raw: searchBlob}
	advisor, session := newTestAdvisor(t, llm, engine)

	result, err := advisor.Advise(context.Background(), session, "explain photosynthesis")
	require.NoError(t, err)
	assert.False(t, result.SearchPerformed)
	assert.Empty(t, result.Entries)
	assert.Empty(t, result.CitationGuide)
	assert.Equal(t, 0, engine.calls)
}

func TestAdviseRunsFullPipeline(t *testing.T) {
	llm := &fakeLLM{}
	engine := &fakeEngine{raw: searchBlob}
	advisor, session := newTestAdvisor(t, llm, engine)

	// Trigger keyword decides without the LLM, search returns four
	// entries truncated to the configured three
	result, err := advisor.Advise(context.Background(), session, "latest flood updates")
	require.NoError(t, err)

	assert.True(t, result.SearchPerformed)
	assert.Equal(t, "latest flood updates", result.SearchQuery, "no rewriter configured")
	require.Len(t, result.Entries, 3)
	assert.Equal(t, "[1] [2] [3]", result.CitationBlock)
	assert.Equal(t, "Web Sources:\n[1] Entry one line1\n[2] Entry two\n[3] Entry three\n", result.CitationGuide)
	require.Len(t, result.Citations, 3)
	assert.Equal(t, domain.Citation{Index: 1, Title: "Entry one line1"}, result.Citations[0])
	assert.Equal(t, 0, llm.calls)
}

func TestAdviseAbsorbsSearchFailure(t *testing.T) {
	llm := &fakeLLM{}
	engine := &fakeEngine{err: errors.New("provider down")}
	advisor, session := newTestAdvisor(t, llm, engine)

	result, err := advisor.Advise(context.Background(), session, "latest earthquake news")
	require.NoError(t, err, "a failed search must not fail the pipeline")
	assert.True(t, result.SearchPerformed)
	assert.Empty(t, result.Entries)
	assert.Empty(t, result.CitationBlock)
}

func TestAdvisePropagatesDecisionFailure(t *testing.T) {
	llm := &fakeLLM{err: errors.New("connection refused")}
	engine := &fakeEngine{raw: searchBlob}
	advisor, session := newTestAdvisor(t, llm, engine)

	_, err := advisor.Advise(context.Background(), session, "explain photosynthesis")
	require.Error(t, err)
	assert.Equal(t, 0, engine.calls)
}

func TestAdviseSessionCachesAreIndependent(t *testing.T) {
	llm := &fakeLLM{response: `{"web_search_needed": false, "reason": "general knowledge"}`}
	engine := &fakeEngine{raw: searchBlob}
	advisor, sessionA := newTestAdvisor(t, llm, engine)

	sessionB, err := domain.NewSession(8)
	require.NoError(t, err)

	_, err = advisor.Advise(context.Background(), sessionA, "explain photosynthesis")
	require.NoError(t, err)
	_, err = advisor.Advise(context.Background(), sessionB, "explain photosynthesis")
	require.NoError(t, err)

	assert.Equal(t, 2, llm.calls, "each session resolves the query against its own cache")
}
