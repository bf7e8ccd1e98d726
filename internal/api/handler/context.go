package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dashkit/admin-api/internal/api/middleware"
	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

// ctxClaims extracts the claims injected by the Auth middleware. A missing
// user id means the middleware did not run, which is reported as 401.
func ctxClaims(c echo.Context) (ports.Claims, error) {
	userID, _ := c.Get(middleware.KeyUserID).(string)
	if userID == "" {
		return ports.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get(middleware.KeyRole).(string)
	email, _ := c.Get(middleware.KeyEmail).(string)
	jti, _ := c.Get(middleware.KeyTokenID).(string)
	exp, _ := c.Get(middleware.KeyExpiresAt).(time.Time)

	return ports.Claims{
		UserID:    userID,
		Email:     email,
		Role:      domain.Role(role),
		TokenID:   jti,
		ExpiresAt: exp,
	}, nil
}

// actorID returns the caller's user id, or "" when unauthenticated.
func actorID(c echo.Context) string {
	id, _ := c.Get(middleware.KeyUserID).(string)
	return id
}
