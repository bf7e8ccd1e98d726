package ports

import (
	"context"
	"time"
)

// SessionStore tracks revoked session tokens by their jti claim.
type SessionStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
