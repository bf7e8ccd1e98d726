package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process persists a single activity entry.
func (s *activityService) Process(ctx context.Context, activity domain.Activity) error {
	if activity.Action == "" {
		return domain.NewValidationError("activity action is required")
	}
	if err := s.repo.Insert(ctx, &activity); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	s.log.Debug().
		Str("user_id", activity.UserID).
		Str("action", string(activity.Action)).
		Str("entity_id", activity.EntityID).
		Msg("activity recorded")
	return nil
}

func (s *activityService) List(ctx context.Context, input ports.ListActivitiesInput) (*ports.ListActivitiesResult, error) {
	items, total, err := s.repo.List(ctx, ports.ActivityFilter{
		UserID: input.UserID,
		Page:   input.Page,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return &ports.ListActivitiesResult{
		Items:      items,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: domain.PageCount(total, input.Limit),
	}, nil
}
