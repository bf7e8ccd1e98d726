package ports

import (
	"context"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// ListPostsInput carries all parameters for the post list endpoint.
type ListPostsInput struct {
	Page      int
	Limit     int
	Published *bool
	AuthorID  string
	Search    string
}

// ListPostsResult is returned by ListPosts.
type ListPostsResult struct {
	Items      []*domain.Post
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CreatePostInput carries the fields accepted when creating a post.
type CreatePostInput struct {
	Title     string
	Content   string
	Published bool
	AuthorID  string
	ActorID   string
}

// UpdatePostInput carries a partial update for one post.
type UpdatePostInput struct {
	ID      string
	Patch   domain.PostPatch
	ActorID string
}

// PostService defines use-case operations for posts.
type PostService interface {
	ListPosts(ctx context.Context, input ListPostsInput) (*ListPostsResult, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, input UpdatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, id, actorID string) error
	Stats(ctx context.Context) (domain.PostStats, error)
}
