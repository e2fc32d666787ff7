package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baycast/searchgate/config"
)

func newTestHeuristic(t *testing.T) *KeywordHeuristic {
	t.Helper()
	cfg := config.DefaultConfig()
	h, err := NewKeywordHeuristic(&cfg.Decision, testLogger())
	require.NoError(t, err)
	return h
}

func TestHeuristicTriggerKeywords(t *testing.T) {
	h := newTestHeuristic(t)

	tests := []struct {
		query  string
		needed bool
	}{
		{"what is the latest news on the election", true},
		{"What is the CURRENT price of gold", true},
		{"can you do research on battery tech", true},
		{"please look it up for me", true},
		{"find statistics about rainfall", true},
		{"hi there", false},
		{"hello, who are you", false},
		{"hey what can you do", false},
		{"how are you doing", false},
		{"explain how quicksort works", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.needed, h.Decide(tt.query), "query: %s", tt.query)
	}
}

func TestHeuristicGreetingWithTriggerKeywordStillSearches(t *testing.T) {
	h := newTestHeuristic(t)

	// Keyword check runs before the greeting short-circuit
	assert.True(t, h.Decide("hi, what is today's weather"))
}

func TestHeuristicMemoizes(t *testing.T) {
	h := newTestHeuristic(t)

	query := "what is the latest score"
	assert.True(t, h.Decide(query))
	assert.True(t, h.memo.Contains(query))

	// Second call is served from the memo
	assert.True(t, h.Decide(query))
}

func TestHeuristicRejectsInvalidGreetingPattern(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Decision.GreetingPatterns = []string{`[`}

	_, err := NewKeywordHeuristic(&cfg.Decision, testLogger())
	require.Error(t, err)
}
