package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

// ActivityRepository implements ports.ActivityRepository over a Store.
type ActivityRepository struct {
	s *Store
}

func (r *ActivityRepository) Insert(ctx context.Context, activity *domain.Activity) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.s.lock(ctx)()

	rec := activityRecord{Activity: *activity, seq: r.s.nextSeq()}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.s.now()
	}
	r.s.activities = append(r.s.activities, rec)
	activity.ID = rec.ID
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filter ports.ActivityFilter) ([]*domain.Activity, int64, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	defer r.s.rlock(ctx)()

	matched := make([]activityRecord, 0, len(r.s.activities))
	for _, rec := range r.s.activities {
		if filter.UserID != "" && rec.UserID != filter.UserID {
			continue
		}
		matched = append(matched, rec)
	}
	newestFirst(matched, func(r activityRecord) (time.Time, int64) { return r.CreatedAt, r.seq })

	paged := page(matched, filter.Page, filter.Limit)
	out := make([]*domain.Activity, len(paged))
	for i, rec := range paged {
		a := rec.Activity
		out[i] = &a
	}
	return out, int64(len(matched)), nil
}
