package ports

import (
	"context"
	"time"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// RegisterInput carries self-service sign-up details.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Session is an issued login session.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Claims is the verified identity attached to a request.
type Claims struct {
	UserID    string
	Email     string
	Role      domain.Role
	TokenID   string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, claims Claims) error
	Me(ctx context.Context, userID string) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
}
