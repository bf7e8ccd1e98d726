package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dashkit/admin-api/internal/core/domain"
)

func runErrorHandler(t *testing.T, log zerolog.Logger, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users", nil), rec)

	NewHTTPErrorHandler(log)(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, body := runErrorHandler(t, zerolog.Nop(), echo.ErrNotFound)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if body["status"] != "error" || body["message"] != "Not Found" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("4xx must not carry a diagnostic: %+v", body)
	}
}

func TestHTTPErrorHandler_DomainError(t *testing.T) {
	code, body := runErrorHandler(t, zerolog.Nop(), domain.ErrDuplicateEmail)
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
	if body["message"] != "Email already in use" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	code, body := runErrorHandler(t, zerolog.New(&buf), errors.New("socket closed"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["message"] != "internal server error" || body["error"] != "socket closed" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if !bytes.Contains(buf.Bytes(), []byte("socket closed")) {
		t.Fatalf("expected cause to be logged, got %q", buf.String())
	}
}

func TestHTTPErrorHandler_InternalCauseOn500(t *testing.T) {
	err := echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users").SetInternal(errors.New("timeout"))
	code, body := runErrorHandler(t, zerolog.Nop(), err)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["message"] != "Failed to fetch users" || body["error"] != "timeout" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
