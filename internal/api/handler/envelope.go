package handler

import (
	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// ErrorResponse is the error envelope returned on all 4xx/5xx responses.
// Error is a diagnostic aid on 500s only; clients must not branch on it.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewErrorResponse builds the error envelope. It is exported for the central
// echo error handler.
func NewErrorResponse(message, diagnostic string) ErrorResponse {
	return ErrorResponse{Status: statusError, Message: message, Error: diagnostic}
}

// success writes {"status":"success","message":...} merged with payload.
func success(c echo.Context, code int, message string, payload echo.Map) error {
	body := echo.Map{"status": statusSuccess, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(code, body)
}
