package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// AccountLookup is the slice of the user repository CurrentAccount needs.
type AccountLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// CurrentAccount runs after Auth and reloads the token's subject, so a deleted,
// deactivated or demoted user loses access on the next request instead of when the
// token expires. The stored role and email replace the ones carried in the token.
// A nil lookup disables the check.
func CurrentAccount(accounts AccountLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if accounts == nil {
			return next
		}
		return func(c echo.Context) error {
			id, _ := c.Get(KeyUserID).(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			user, err := accounts.FindByID(c.Request().Context(), id)
			switch {
			case errors.Is(err, domain.ErrUserNotFound):
				return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
			case err != nil:
				return echo.NewHTTPError(http.StatusServiceUnavailable, "user store unavailable").SetInternal(err)
			case user.Status != domain.StatusActive:
				return echo.NewHTTPError(http.StatusForbidden, "account is inactive")
			}

			c.Set(KeyRole, string(user.Role))
			c.Set(KeyEmail, user.Email)
			return next(c)
		}
	}
}
