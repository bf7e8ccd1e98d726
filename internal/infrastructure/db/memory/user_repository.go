package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository over a Store.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, int64, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	defer r.s.rlock(ctx)()

	matched := make([]userRecord, 0, len(r.s.users))
	for _, rec := range r.s.users {
		if filter.Search != "" && !containsFold(rec.Name, filter.Search) && !containsFold(rec.Email, filter.Search) {
			continue
		}
		matched = append(matched, rec)
	}
	newestFirst(matched, func(r userRecord) (time.Time, int64) { return r.CreatedAt, r.seq })

	paged := page(matched, filter.Page, filter.Limit)
	out := make([]*domain.User, len(paged))
	for i, rec := range paged {
		u := rec.User
		out[i] = &u
	}
	return out, int64(len(matched)), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.s.rlock(ctx)()

	rec, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := rec.User
	return &u, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.s.rlock(ctx)()

	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.s.users[id]; ok {
			u := rec.User
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.s.rlock(ctx)()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.s.users[id].User
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.s.lock(ctx)()

	if _, taken := r.s.emails[user.Email]; taken {
		return nil, domain.ErrDuplicateEmail
	}

	rec := userRecord{User: *user, seq: r.s.nextSeq()}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	r.s.users[rec.ID] = rec
	r.s.emails[rec.Email] = rec.ID
	r.s.remember(ctx, func() {
		delete(r.s.users, rec.ID)
		delete(r.s.emails, rec.Email)
	})

	u := rec.User
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch, updatedAt time.Time) (*domain.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.s.lock(ctx)()

	before, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	after := before
	if patch.Email != nil && *patch.Email != before.Email {
		if owner, taken := r.s.emails[*patch.Email]; taken && owner != id {
			return nil, domain.ErrDuplicateEmail
		}
		delete(r.s.emails, before.Email)
		r.s.emails[*patch.Email] = id
		after.Email = *patch.Email
	}
	if patch.Name != nil {
		after.Name = *patch.Name
	}
	if patch.Image != nil {
		after.Image = *patch.Image
	}
	if patch.Status != nil {
		after.Status = *patch.Status
	}
	if patch.Role != nil {
		after.Role = *patch.Role
	}
	after.UpdatedAt = updatedAt
	r.s.users[id] = after
	r.s.remember(ctx, func() {
		delete(r.s.emails, after.Email)
		r.s.emails[before.Email] = id
		r.s.users[id] = before
	})

	u := after.User
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.s.lock(ctx)()

	rec, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	delete(r.s.emails, rec.Email)
	r.s.remember(ctx, func() {
		r.s.users[id] = rec
		r.s.emails[rec.Email] = id
	})
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	defer r.s.rlock(ctx)()
	return int64(len(r.s.users)), nil
}
