package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionClient is the subset of *redis.Client the store needs.
type sessionClient interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// SessionStore records revoked session token ids so logout takes effect
// before the token expires. Key format: revoked:<jti>
type SessionStore struct {
	client sessionClient
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client sessionClient) *SessionStore {
	return &SessionStore{client: client}
}

// Revoke marks jti as revoked for ttl. A non-positive ttl is a no-op since the
// token has already expired.
func (s *SessionStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked.
func (s *SessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

func key(jti string) string {
	return "revoked:" + jti
}
