package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
	"github.com/dashkit/admin-api/internal/infrastructure/db/memory"
)

// recorderStub collects activities synchronously.
type recorderStub struct {
	mu  sync.Mutex
	got []domain.Activity
}

func (r *recorderStub) Record(a domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, a)
}

func (r *recorderStub) actions() []domain.ActivityAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityAction, len(r.got))
	for i, a := range r.got {
		out[i] = a.Action
	}
	return out
}

type fixture struct {
	store    *memory.Store
	recorder *recorderStub
	users    *UserService
	posts    *PostService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	rec := &recorderStub{}
	return &fixture{
		store:    store,
		recorder: rec,
		users:    NewUserService(store.Users(), store.Posts(), store, rec, zerolog.Nop()),
		posts:    NewPostService(store.Posts(), store.Users(), rec, zerolog.Nop()),
	}
}

func (f *fixture) createUser(t *testing.T, name, email string) *domain.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), ports.CreateUserInput{Name: name, Email: email, ActorID: "admin"})
	require.NoError(t, err)
	return u
}

func (f *fixture) createPost(t *testing.T, authorID, title string, published bool) *domain.Post {
	t.Helper()
	p, err := f.posts.CreatePost(context.Background(), ports.CreatePostInput{
		Title:     title,
		Published: published,
		AuthorID:  authorID,
		ActorID:   authorID,
	})
	require.NoError(t, err)
	return p
}
