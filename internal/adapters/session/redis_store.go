package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hydauction-listing-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	tokenKeyPrefix = "session:"
	userKeyPrefix  = "session_user:"
)

// RedisStore is a shared session store for multi-instance deployments.
// Expiry is enforced with key TTLs instead of a sweeper, which preserves the
// external contract: an expired token is simply not found.
type RedisStore struct {
	client *redis.Client
	maxAge time.Duration
	logger zerolog.Logger
}
type RedisStoreParams struct {
	Client *redis.Client
	MaxAge time.Duration
	Logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(params RedisStoreParams) *RedisStore {
	maxAge := params.MaxAge
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}

	return &RedisStore{
		client: params.Client,
		maxAge: maxAge,
		logger: params.Logger.With().Str("component", "redis_session_store").Logger(),
	}
}

func tokenKey(token string) string {
	return tokenKeyPrefix + token
}

func userKey(userID uuid.UUID) string {
	return userKeyPrefix + userID.String()
}

// Put stores a session under the token key plus a user index entry used for
// the per-user lookup, both expiring together
func (store *RedisStore) Put(ctx context.Context, session shared.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := store.client.TxPipeline()
	pipe.Set(ctx, tokenKey(session.Token), data, store.maxAge)
	pipe.Set(ctx, userKey(session.UserID), session.Token, store.maxAge)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Get retrieves a session by token, returning nil when absent or expired
func (store *RedisStore) Get(ctx context.Context, token string) (*shared.Session, error) {
	val, err := store.client.Get(ctx, tokenKey(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session shared.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// FindByUserID retrieves the live session for a user through the user index
func (store *RedisStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*shared.Session, error) {
	token, err := store.client.Get(ctx, userKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user session: %w", err)
	}

	return store.Get(ctx, token)
}

// Remove deletes a session and its user index entry
func (store *RedisStore) Remove(ctx context.Context, token string) error {
	session, err := store.Get(ctx, token)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	pipe := store.client.TxPipeline()
	pipe.Del(ctx, tokenKey(token))
	pipe.Del(ctx, userKey(session.UserID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	return nil
}
