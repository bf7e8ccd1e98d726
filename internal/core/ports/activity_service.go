package ports

import (
	"context"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// ActivityRecorder accepts activity entries for asynchronous persistence.
// Record must not block the caller.
type ActivityRecorder interface {
	Record(activity domain.Activity)
}

// ListActivitiesInput carries all parameters for the activity feed endpoint.
type ListActivitiesInput struct {
	UserID string
	Page   int
	Limit  int
}

// ListActivitiesResult is returned by ActivityService.List.
type ListActivitiesResult struct {
	Items      []*domain.Activity
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ActivityService persists and lists activity entries.
type ActivityService interface {
	Process(ctx context.Context, activity domain.Activity) error
	List(ctx context.Context, input ListActivitiesInput) (*ListActivitiesResult, error)
}
