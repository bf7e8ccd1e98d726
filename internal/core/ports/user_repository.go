package ports

import (
	"context"
	"time"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// UserFilter carries the query parameters for listing users.
type UserFilter struct {
	Search string // optional: case-insensitive substring on name or email
	Page   int    // 1-based
	Limit  int
}

// UserRepository defines persistence operations for users.
// Lookups that match nothing return domain.ErrUserNotFound; email collisions return
// domain.ErrDuplicateEmail.
type UserRepository interface {
	// List returns a page of users ordered by creation time descending and the total match count.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, int64, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// FindByEmail is an exact match against the stored, normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch, updatedAt time.Time) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
