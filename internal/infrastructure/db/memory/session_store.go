package memory

import (
	"context"
	"time"
)

// SessionStore implements ports.SessionStore over a Store.
type SessionStore struct {
	s *Store
}

func (r *SessionStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.s.lock(ctx)()
	r.s.revoked[jti] = r.s.now().Add(ttl)
	return nil
}

func (r *SessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	defer r.s.rlock(ctx)()
	until, ok := r.s.revoked[jti]
	return ok && r.s.now().Before(until), nil
}
