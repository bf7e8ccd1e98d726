package ports

import (
	"context"
	"time"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// PostFilter carries the query parameters for listing posts.
type PostFilter struct {
	Published *bool  // optional
	AuthorID  string // optional
	Search    string // optional: case-insensitive substring on title or content
	Page      int    // 1-based
	Limit     int
}

// PostRepository defines persistence operations for posts.
// Returned posts carry AuthorID only; the service attaches author projections.
type PostRepository interface {
	List(ctx context.Context, filter PostFilter) ([]*domain.Post, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// ListByAuthor returns every post owned by authorID, newest first.
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
	// CountByAuthors returns post counts keyed by author id. Authors with no posts are absent.
	CountByAuthors(ctx context.Context, authorIDs []string) (map[string]int64, error)
	// Count counts all posts, or only those matching published when it is non-nil.
	Count(ctx context.Context, published *bool) (int64, error)
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Update(ctx context.Context, id string, patch domain.PostPatch, updatedAt time.Time) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	// DeleteByAuthor removes every post owned by authorID and reports how many went.
	DeleteByAuthor(ctx context.Context, authorID string) (int64, error)
}
