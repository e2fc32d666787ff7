package ports

import (
	"context"

	"github.com/baycast/searchgate/internal/core/domain"
)

// SessionRepositoryPort defines the interface for session storage
type SessionRepositoryPort interface {
	// SaveSession saves a session
	SaveSession(ctx context.Context, session *domain.Session) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// ListSessions returns all sessions
	ListSessions(ctx context.Context) ([]*domain.Session, error)

	// DeleteSession deletes a session by ID
	DeleteSession(ctx context.Context, id string) error
}
