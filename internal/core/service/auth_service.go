package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

const (
	minPasswordLength = 8
	passwordHashCost  = 12
)

// AuthService implements registration, login and session revocation.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	activity  ports.ActivityRecorder
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	activity ports.ActivityRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		activity:  activityOrNop(activity),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := domain.NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, domain.NewValidationError("missing required fields")
	}
	if !domain.ValidEmail(email) {
		return nil, domain.NewValidationError("email must be a valid email address")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password must be at least %d characters long", minPasswordLength)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check email uniqueness: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	s.activity.Record(domain.Activity{
		UserID:      user.ID,
		Action:      domain.ActionSignup,
		Entity:      domain.EntityUser,
		EntityID:    user.ID,
		Description: "User registered a new account",
		CreatedAt:   now,
	})
	return user, nil
}

// Login verifies credentials and issues a signed session token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status == domain.StatusInactive {
		return nil, domain.ErrAccountInactive
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	token, err := s.generateToken(user, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.activity.Record(domain.Activity{
		UserID:      user.ID,
		Action:      domain.ActionLogin,
		Description: "User logged into the system",
		CreatedAt:   now,
	})
	return &ports.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revokes the session token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims ports.Claims) error {
	if claims.TokenID == "" {
		return domain.ErrUnauthorized
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl > 0 {
		if err := s.sessions.Revoke(ctx, claims.TokenID, ttl); err != nil {
			return fmt.Errorf("revoke session: %w", err)
		}
	}

	s.activity.Record(domain.Activity{
		UserID:      claims.UserID,
		Action:      domain.ActionLogout,
		Description: "User logged out",
		CreatedAt:   s.now(),
	})
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// RequestPasswordReset is a placeholder: no reset token is issued and no email is sent.
func (s *AuthService) RequestPasswordReset(_ context.Context, email string) error {
	s.logger.Info().Str("email", domain.NormalizeEmail(email)).Msg("password reset requested")
	return nil
}

func (s *AuthService) generateToken(user *domain.User, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"jti":   uuid.NewString(),
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
