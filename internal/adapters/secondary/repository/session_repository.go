package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/baycast/searchgate/internal/core/domain"
	"github.com/baycast/searchgate/internal/logger"
)

// ErrSessionNotFound is returned when a session ID has no entry
var ErrSessionNotFound = errors.New("session not found")

// InMemorySessionRepository implements the SessionRepositoryPort
// interface with in-memory storage
type InMemorySessionRepository struct {
	sessions map[string]*domain.Session
	mutex    sync.RWMutex
	logger   logger.Logger
}

// NewInMemorySessionRepository creates a new InMemorySessionRepository
func NewInMemorySessionRepository(log logger.Logger) *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[string]*domain.Session),
		logger:   log,
	}
}

// SaveSession saves a session
func (r *InMemorySessionRepository) SaveSession(ctx context.Context, session *domain.Session) error {
	r.logger.Debug("Saving session", "session_id", session.ID)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.sessions[session.ID] = session
	return nil
}

// GetSession retrieves a session by ID
func (r *InMemorySessionRepository) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		r.logger.Warn("Session not found", "session_id", id)
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// ListSessions returns all sessions
func (r *InMemorySessionRepository) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	sessions := make([]*domain.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// DeleteSession deletes a session by ID
func (r *InMemorySessionRepository) DeleteSession(ctx context.Context, id string) error {
	r.logger.Debug("Deleting session", "session_id", id)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.sessions[id]; !exists {
		r.logger.Warn("Session not found for deletion", "session_id", id)
		return ErrSessionNotFound
	}

	delete(r.sessions, id)
	return nil
}
