package ports

import (
	"context"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// ListUsersInput carries all parameters for the user list endpoint.
type ListUsersInput struct {
	Page   int
	Limit  int
	Search string
}

// UserSummary is a list row: the user plus the number of posts it owns.
type UserSummary struct {
	User      *domain.User
	PostCount int64
}

// ListUsersResult is returned by ListUsers.
type ListUsersResult struct {
	Items      []UserSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserDetail is the full user view returned by GetUser.
type UserDetail struct {
	User  *domain.User
	Posts []*domain.Post
}

// CreateUserInput carries the fields accepted for administrative user creation.
type CreateUserInput struct {
	Name    string
	Email   string
	Image   string
	ActorID string
}

// UpdateUserInput carries a partial update for one user.
type UpdateUserInput struct {
	ID      string
	Patch   domain.UserPatch
	ActorID string
}

// UserService defines use-case operations for users.
type UserService interface {
	ListUsers(ctx context.Context, input ListUsersInput) (*ListUsersResult, error)
	GetUser(ctx context.Context, id string) (*UserDetail, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id, actorID string) error
}
