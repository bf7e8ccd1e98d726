package ports

import (
	"context"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// ActivityFilter carries the query parameters for the activity feed.
type ActivityFilter struct {
	UserID string // optional
	Page   int
	Limit  int
}

// ActivityRepository persists activity feed entries.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	// List returns entries newest first and the total match count.
	List(ctx context.Context, filter ActivityFilter) ([]*domain.Activity, int64, error)
}
