package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	keys      map[string]time.Duration
	existsErr error
}

func (s *stubClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	s.keys[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (s *stubClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := s.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, s.existsErr)
}

func TestSessionStore_RevokeAndCheck(t *testing.T) {
	stub := &stubClient{keys: map[string]time.Duration{}}
	store := NewSessionStore(stub)

	require.NoError(t, store.Revoke(context.Background(), "abc", time.Hour))
	require.Equal(t, time.Hour, stub.keys["revoked:abc"])

	revoked, err := store.IsRevoked(context.Background(), "abc")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = store.IsRevoked(context.Background(), "other")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestSessionStore_ExpiredTokenIsNotStored(t *testing.T) {
	stub := &stubClient{keys: map[string]time.Duration{}}
	store := NewSessionStore(stub)

	require.NoError(t, store.Revoke(context.Background(), "old", 0))
	require.Empty(t, stub.keys)
}

func TestSessionStore_CheckError(t *testing.T) {
	stub := &stubClient{keys: map[string]time.Duration{}, existsErr: errors.New("conn refused")}
	store := NewSessionStore(stub)

	_, err := store.IsRevoked(context.Background(), "abc")
	require.Error(t, err)
}
