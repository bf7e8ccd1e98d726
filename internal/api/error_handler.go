package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dashkit/admin-api/internal/api/handler"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders every error as the {"status":"error","message":...} envelope.
//   - Translates domain errors that reach it unmapped into their HTTP status.
//   - Logs 5xx causes and attaches them as the advisory "error" field.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			he = handler.HTTPError(err, "internal server error")
		}

		msg := fmt.Sprintf("%v", he.Message)
		diagnostic := ""
		if he.Code >= http.StatusInternalServerError {
			cause := he.Internal
			if cause == nil {
				cause = err
			}
			diagnostic = cause.Error()
			log.Error().
				Err(cause).
				Int("status", he.Code).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(he.Code)
			return
		}
		_ = c.JSON(he.Code, handler.NewErrorResponse(msg, diagnostic))
	}
}
