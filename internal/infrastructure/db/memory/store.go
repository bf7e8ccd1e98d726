// Package memory is an in-process backend for local runs and tests. It honours the same
// contracts as the MongoDB and Postgres stores, including transactional cascade deletes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// Store holds every collection behind one lock.
type Store struct {
	mu         sync.RWMutex
	users      map[string]userRecord
	emails     map[string]string // normalized email -> user id
	posts      map[string]postRecord
	activities []activityRecord
	revoked    map[string]time.Time
	seq        int64
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]userRecord),
		emails:  make(map[string]string),
		posts:   make(map[string]postRecord),
		revoked: make(map[string]time.Time),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Posts returns the post repository view of the store.
func (s *Store) Posts() *PostRepository { return &PostRepository{s: s} }

// Activities returns the activity repository view of the store.
func (s *Store) Activities() *ActivityRepository { return &ActivityRepository{s: s} }

// Sessions returns the session revocation view of the store.
func (s *Store) Sessions() *SessionStore { return &SessionStore{s: s} }

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

type txKey struct{}

type undoLog struct {
	s   *Store
	ops []func()
}

// WithinTx holds the write lock for the whole of fn, so readers outside the
// transaction see either none or all of its writes. Writes made through the ctx
// handed to fn register an inverse operation; if fn fails the inverses run newest first.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := &undoLog{s: s}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		for i := len(log.ops) - 1; i >= 0; i-- {
			log.ops[i]()
		}
		return err
	}
	return nil
}

func (s *Store) txLog(ctx context.Context) *undoLog {
	if log, ok := ctx.Value(txKey{}).(*undoLog); ok && log.s == s {
		return log
	}
	return nil
}

// lock takes the write lock unless ctx belongs to a transaction on s, which
// already holds it. The returned func releases whatever was taken.
func (s *Store) lock(ctx context.Context) func() {
	if s.txLog(ctx) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(ctx context.Context) func() {
	if s.txLog(ctx) != nil {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// remember must be called with s.mu held.
func (s *Store) remember(ctx context.Context, undo func()) {
	if log := s.txLog(ctx); log != nil {
		log.ops = append(log.ops, undo)
	}
}

// nextSeq returns a monotonically increasing tie-breaker for equal timestamps.
// Must be called with s.mu held.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// page slices items for a 1-based page. A non-positive limit returns everything.
func page[T any](items []T, pageNum, limit int) []T {
	if limit <= 0 {
		return items
	}
	skip := domain.Skip(pageNum, limit)
	if skip < 0 || skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) || end < skip {
		end = len(items)
	}
	return items[skip:end]
}

type userRecord struct {
	domain.User
	seq int64
}

type postRecord struct {
	domain.Post
	seq int64
}

type activityRecord struct {
	domain.Activity
	seq int64
}

// newestFirst orders by creation time descending, then by insertion order descending.
func newestFirst[T any](items []T, key func(T) (time.Time, int64)) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, si := key(items[i])
		cj, sj := key(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return si > sj
	})
}

func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
