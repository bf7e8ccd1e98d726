package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

// ActivityRepository implements ports.ActivityRepository on PostgreSQL.
type ActivityRepository struct {
	store *Store
}

func (r *ActivityRepository) Insert(ctx context.Context, activity *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := uuid.NewString()
	_, err := r.store.conn(ctx).Exec(ctx,
		`INSERT INTO activities (id, user_id, action, entity, entity_id, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id,
		activity.UserID,
		string(activity.Action),
		activity.Entity,
		activity.EntityID,
		activity.Description,
		activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	activity.ID = id
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filter ports.ActivityFilter) ([]*domain.Activity, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	db := r.store.conn(ctx)

	conditions := func(a *args) []string {
		if filter.UserID == "" {
			return nil
		}
		return []string{"user_id = " + a.add(filter.UserID)}
	}

	var countArgs args
	var total int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM activities`+where(conditions(&countArgs)), countArgs.values...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	var a args
	query := `SELECT id, user_id, action, entity, entity_id, description, created_at FROM activities` +
		where(conditions(&a)) + pageClause(&a, filter.Page, filter.Limit)
	rows, err := db.Query(ctx, query, a.values...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	out := []*domain.Activity{}
	for rows.Next() {
		act := &domain.Activity{}
		var action string
		if err := rows.Scan(&act.ID, &act.UserID, &action, &act.Entity, &act.EntityID, &act.Description, &act.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		act.Action = domain.ActivityAction(action)
		act.CreatedAt = act.CreatedAt.UTC()
		out = append(out, act)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	return out, total, nil
}
