package session

import (
	"context"
	"sync"
	"time"

	"hydauction-listing-service/internal/domain/shared"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in a process-local map guarded by a single
// RWMutex. Critical sections are pure map operations, no I/O is performed
// under the lock. Expiry is driven by Sweep, never checked on Get.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]shared.Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]shared.Session),
	}
}

// Put stores a session. Tokens are generated fresh, so an existing entry for
// the same token is simply overwritten.
func (store *MemoryStore) Put(ctx context.Context, session shared.Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sessions[session.Token] = session
	return nil
}

// Get retrieves a session by token, returning nil when absent
func (store *MemoryStore) Get(ctx context.Context, token string) (*shared.Session, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	session, ok := store.sessions[token]
	if !ok {
		return nil, nil
	}

	return &session, nil
}

// FindByUserID retrieves the live session for a user, returning nil when the
// user has none
func (store *MemoryStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*shared.Session, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	for _, session := range store.sessions {
		if session.UserID == userID {
			found := session
			return &found, nil
		}
	}

	return nil, nil
}

// Remove deletes a session, a no-op when the token is absent
func (store *MemoryStore) Remove(ctx context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.sessions, token)
	return nil
}

// Sweep removes every session older than maxAge relative to now and returns
// the number of sessions removed
func (store *MemoryStore) Sweep(now time.Time, maxAge time.Duration) int {
	store.mu.Lock()
	defer store.mu.Unlock()

	removed := 0
	for token, session := range store.sessions {
		if now.Sub(session.CreatedAt) > maxAge {
			delete(store.sessions, token)
			removed++
		}
	}

	return removed
}

// Len returns the number of live sessions
func (store *MemoryStore) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return len(store.sessions)
}
