package outbound

import (
	"context"

	"hydauction-listing-service/internal/domain/shared"

	"github.com/google/uuid"
)

// SessionStore defines the interface for server-side session storage.
// A session's presence in the store is the only proof of authentication.
type SessionStore interface {
	// Put stores a session, overwriting any existing entry for the token
	Put(ctx context.Context, session shared.Session) error

	// Get retrieves a session by token, returning nil when absent.
	// Expiry is enforced by removal, not checked here.
	Get(ctx context.Context, token string) (*shared.Session, error)

	// FindByUserID retrieves the live session for a user, returning nil
	// when the user has none
	FindByUserID(ctx context.Context, userID uuid.UUID) (*shared.Session, error)

	// Remove deletes a session, a no-op when the token is absent
	Remove(ctx context.Context, token string) error
}

// FileStore defines the interface for persisting uploaded binaries
type FileStore interface {
	// SaveAll stores every upload and returns one stable path per upload,
	// in input order
	SaveAll(ctx context.Context, uploads []shared.Upload) ([]string, error)
}
