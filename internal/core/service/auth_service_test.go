package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
	"github.com/dashkit/admin-api/internal/infrastructure/db/memory"
)

const testSecret = "secret"

func newAuthFixture(t *testing.T) (*AuthService, *memory.Store, *recorderStub) {
	t.Helper()
	store := memory.NewStore()
	rec := &recorderStub{}
	return NewAuthService(store.Users(), store.Sessions(), rec, testSecret, time.Hour, zerolog.Nop()), store, rec
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, rec := newAuthFixture(t)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, domain.RoleUser, user.Role)
	require.NotEqual(t, "correct-horse", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
	require.Equal(t, []domain.ActivityAction{domain.ActionSignup}, rec.actions())
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "short"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Register(ctx, ports.RegisterInput{Name: "", Email: "alice@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "nope", Password: "correct-horse"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()
	in := ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "correct-horse"}

	_, err := svc.Register(ctx, in)
	require.NoError(t, err)
	_, err = svc.Register(ctx, in)
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login_IssuesToken(t *testing.T) {
	svc, _, rec := newAuthFixture(t)
	ctx := context.Background()
	user, err := svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	session, err := svc.Login(ctx, "ALICE@example.com", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, user.ID, session.User.ID)
	require.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(session.Token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, claims["sub"])
	require.Equal(t, "USER", claims["role"])
	require.NotEmpty(t, claims["jti"])

	require.Contains(t, rec.actions(), domain.ActionLogin)
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, store, _ := newAuthFixture(t)
	ctx := context.Background()
	user, err := svc.Register(ctx, ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "correct-horse")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	inactive := domain.StatusInactive
	_, err = store.Users().Update(ctx, user.ID, domain.UserPatch{Status: &inactive}, time.Now())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "correct-horse")
	require.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	svc, store, _ := newAuthFixture(t)
	ctx := context.Background()

	claims := ports.Claims{UserID: "u1", TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err := store.Sessions().IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	require.ErrorIs(t, svc.Logout(ctx, ports.Claims{UserID: "u1"}), domain.ErrUnauthorized)
}

func TestAuthService_RequestPasswordReset_IsNoop(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	require.NoError(t, svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
}
