package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// HTTPError maps a service error to an *echo.HTTPError. Known domain errors get
// their own status; anything else becomes a 500 carrying fallback as the
// message and err as the internal cause.
func HTTPError(err error, fallback string) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Msg)
	case errors.Is(err, domain.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	case errors.Is(err, domain.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrPostNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, domain.ErrAuthorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Author not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusConflict, "Email already in use")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrAccountInactive):
		return echo.NewHTTPError(http.StatusForbidden, "Account is inactive")
	case errors.Is(err, domain.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback).SetInternal(err)
}
