package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

type UserService struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	tx       ports.TxManager
	activity ports.ActivityRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

func NewUserService(
	users ports.UserRepository,
	posts ports.PostRepository,
	tx ports.TxManager,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		posts:    posts,
		tx:       tx,
		activity: activityOrNop(activity),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListUsers returns one page of users, newest first, each with its post count.
func (s *UserService) ListUsers(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
	users, total, err := s.users.List(ctx, ports.UserFilter{
		Search: strings.TrimSpace(input.Search),
		Page:   input.Page,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	counts := map[string]int64{}
	if len(ids) > 0 {
		counts, err = s.posts.CountByAuthors(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("count posts by author: %w", err)
		}
	}

	items := make([]ports.UserSummary, len(users))
	for i, u := range users {
		items[i] = ports.UserSummary{User: u, PostCount: counts[u.ID]}
	}

	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: domain.PageCount(total, input.Limit),
	}, nil
}

// GetUser returns the user with all of its posts, newest first.
func (s *UserService) GetUser(ctx context.Context, id string) (*ports.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByAuthor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list posts for user %s: %w", id, err)
	}
	return &ports.UserDetail{User: user, Posts: posts}, nil
}

// GetUserByEmail looks up a user by its normalized email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
}

// CreateUser persists a new user with the default role and status.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := domain.NormalizeEmail(input.Email)
	if name == "" || email == "" {
		return nil, domain.NewValidationError("name and email are required")
	}
	if !domain.ValidEmail(email) {
		return nil, domain.NewValidationError("email must be a valid email address")
	}

	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.users.Create(ctx, &domain.User{
		Name:      name,
		Email:     email,
		Image:     strings.TrimSpace(input.Image),
		Role:      domain.RoleUser,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("actor_id", input.ActorID).Msg("user created")
	s.activity.Record(domain.Activity{
		UserID:      input.ActorID,
		Action:      domain.ActionCreate,
		Entity:      domain.EntityUser,
		EntityID:    created.ID,
		Description: "Created user " + created.Email,
		CreatedAt:   now,
	})
	return created, nil
}

// UpdateUser applies the fields present in the patch. An invalid patch persists nothing.
func (s *UserService) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	patch := input.Patch
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return s.users.FindByID(ctx, input.ID)
	}

	if patch.Email != nil {
		if err := s.ensureEmailFree(ctx, *patch.Email, input.ID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	updated, err := s.users.Update(ctx, input.ID, patch, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Str("actor_id", input.ActorID).Msg("user updated")
	s.activity.Record(domain.Activity{
		UserID:      input.ActorID,
		Action:      domain.ActionUpdate,
		Entity:      domain.EntityUser,
		EntityID:    updated.ID,
		Description: "Updated user " + updated.Email,
		CreatedAt:   now,
	})
	return updated, nil
}

// DeleteUser removes the user and every post it authored in one transaction.
func (s *UserService) DeleteUser(ctx context.Context, id, actorID string) error {
	var removedPosts int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := s.posts.DeleteByAuthor(ctx, id)
		if err != nil {
			return fmt.Errorf("delete posts of user %s: %w", id, err)
		}
		removedPosts = n
		return s.users.Delete(ctx, id)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		}
		return err
	}

	s.logger.Info().Str("user_id", id).Int64("posts_removed", removedPosts).Str("actor_id", actorID).Msg("user deleted")
	s.activity.Record(domain.Activity{
		UserID:      actorID,
		Action:      domain.ActionDelete,
		Entity:      domain.EntityUser,
		EntityID:    id,
		Description: fmt.Sprintf("Deleted user and %d post(s)", removedPosts),
		CreatedAt:   s.now(),
	})
	return nil
}

// ensureEmailFree fails with ErrDuplicateEmail when email belongs to a user other than selfID.
func (s *UserService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check email uniqueness: %w", err)
	case existing.ID != selfID:
		return domain.ErrDuplicateEmail
	}
	return nil
}
