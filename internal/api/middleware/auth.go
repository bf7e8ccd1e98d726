package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/dashkit/admin-api/internal/core/ports"
)

// Context keys populated by Auth.
const (
	KeyUserID    = "user_id"
	KeyEmail     = "email"
	KeyRole      = "role"
	KeyTokenID   = "jti"
	KeyExpiresAt = "exp"
)

// Auth validates the JWT, rejects revoked sessions and injects claims into context.
// sessions may be nil, in which case revocation is not checked.
func Auth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			}, jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims.GetSubject()
			jti, _ := claims["jti"].(string)
			role, _ := claims["role"].(string)
			if sub == "" || jti == "" || role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
			}

			if sessions != nil {
				revoked, err := sessions.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable").SetInternal(err)
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "session has been revoked")
				}
			}

			exp, _ := claims.GetExpirationTime()
			email, _ := claims["email"].(string)

			c.Set(KeyUserID, sub)
			c.Set(KeyEmail, email)
			c.Set(KeyRole, role)
			c.Set(KeyTokenID, jti)
			c.Set(KeyExpiresAt, exp.Time)

			return next(c)
		}
	}
}
