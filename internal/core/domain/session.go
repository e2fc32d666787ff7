package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/baycast/searchgate/internal/cache"
)

// Session represents one conversational session. Each session owns its
// own decision cache, so cached web-search decisions never leak between
// sessions and the cache dies with the session rather than the process.
type Session struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Cache     *cache.DecisionCache `json:"-"`
}

// NewSession creates a session with a fresh decision cache of the given
// capacity
func NewSession(cacheSize int) (*Session, error) {
	decisions, err := cache.NewDecisionCache(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Cache:     decisions,
	}, nil
}
