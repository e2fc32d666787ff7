package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baycast/searchgate/config"
)

const searchBlob = "Entry one line1\nEntry one line2\n\nEntry two\n\nEntry three\n\nEntry four"

func newTestExecutor(engine *fakeEngine, rewriter *fakeLLM) *SearchExecutor {
	cfg := config.DefaultConfig()
	cfg.WebSearch.RequestsPerSecond = 1000 // keep tests fast

	if rewriter == nil {
		// avoid handing the executor a typed-nil interface
		return NewSearchExecutor(engine, nil, &cfg.WebSearch, testLogger())
	}
	return NewSearchExecutor(engine, rewriter, &cfg.WebSearch, testLogger())
}

func TestSearchSplitsAndTruncatesEntries(t *testing.T) {
	engine := &fakeEngine{raw: searchBlob}
	executor := newTestExecutor(engine, nil)

	entries, err := executor.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Entry one line1\nEntry one line2", entries[0])
	assert.Equal(t, "Entry two", entries[1])
	assert.Equal(t, "Entry three", entries[2])
}

func TestSearchReturnsAllEntriesWhenLimitExceedsCount(t *testing.T) {
	engine := &fakeEngine{raw: searchBlob}
	executor := newTestExecutor(engine, nil)

	entries, err := executor.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	assert.Equal(t, "Entry four", entries[3])
}

func TestSearchPropagatesProviderFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("rate limited")}
	executor := newTestExecutor(engine, nil)

	entries, err := executor.Search(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Nil(t, entries)
}

func TestSearchOrEmptyAbsorbsProviderFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("rate limited")}
	executor := newTestExecutor(engine, nil)

	entries := executor.SearchOrEmpty(context.Background(), "anything", 3)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestGenerateSearchQueryWithoutRewriter(t *testing.T) {
	executor := newTestExecutor(&fakeEngine{}, nil)

	query, err := executor.GenerateSearchQuery(context.Background(), "what's the weather in boston")
	require.NoError(t, err)
	assert.Equal(t, "what's the weather in boston", query)
}

func TestGenerateSearchQueryTrimsRewriterOutput(t *testing.T) {
	rewriter := &fakeLLM{response: "\n \"boston weather today\" \n"}
	executor := newTestExecutor(&fakeEngine{}, rewriter)

	query, err := executor.GenerateSearchQuery(context.Background(), "what's the weather in boston")
	require.NoError(t, err)
	assert.Equal(t, "boston weather today", query)
}

func TestGenerateSearchQueryFallsBackOnError(t *testing.T) {
	rewriter := &fakeLLM{err: errors.New("timeout")}
	executor := newTestExecutor(&fakeEngine{}, rewriter)

	query, err := executor.GenerateSearchQuery(context.Background(), "original query")
	require.Error(t, err)
	assert.Equal(t, "original query", query, "caller can still search with the original query")
}

func TestSplitEntries(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"only blanks", "\n\n  \n", nil},
		{"single entry no trailing newline", "just one", []string{"just one"}},
		{"trailing buffer flushed", "a\nb\n\nc", []string{"a\nb", "c"}},
		{"whitespace-only line is blank", "a\n \t \nb", []string{"a", "b"}},
		{"consecutive blanks collapse", "a\n\n\n\nb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitEntries(tt.raw))
		})
	}
}
