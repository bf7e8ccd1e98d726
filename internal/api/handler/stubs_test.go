package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dashkit/admin-api/internal/api/middleware"
	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

type stubUserService struct {
	listFn       func(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error)
	getFn        func(ctx context.Context, id string) (*ports.UserDetail, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	createFn     func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	updateFn     func(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn     func(ctx context.Context, id, actorID string) error
}

func (s *stubUserService) ListUsers(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*ports.UserDetail, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) UpdateUser(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, in)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id, actorID string) error {
	return s.deleteFn(ctx, id, actorID)
}

type stubPostService struct {
	listFn   func(ctx context.Context, in ports.ListPostsInput) (*ports.ListPostsResult, error)
	getFn    func(ctx context.Context, id string) (*domain.Post, error)
	createFn func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error)
	updateFn func(ctx context.Context, in ports.UpdatePostInput) (*domain.Post, error)
	deleteFn func(ctx context.Context, id, actorID string) error
	statsFn  func(ctx context.Context) (domain.PostStats, error)
}

func (s *stubPostService) ListPosts(ctx context.Context, in ports.ListPostsInput) (*ports.ListPostsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubPostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, in)
}

func (s *stubPostService) UpdatePost(ctx context.Context, in ports.UpdatePostInput) (*domain.Post, error) {
	return s.updateFn(ctx, in)
}

func (s *stubPostService) DeletePost(ctx context.Context, id, actorID string) error {
	return s.deleteFn(ctx, id, actorID)
}

func (s *stubPostService) Stats(ctx context.Context) (domain.PostStats, error) {
	return s.statsFn(ctx)
}

// newTestEcho mirrors the production echo setup relevant to handlers.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		he := HTTPError(err, "internal server error")
		diagnostic := ""
		if he.Code >= http.StatusInternalServerError && he.Internal != nil {
			diagnostic = he.Internal.Error()
		}
		_ = c.JSON(he.Code, NewErrorResponse(fmt.Sprint(he.Message), diagnostic))
	}
	return e
}

// serve runs h against a fresh context and renders any returned error the way
// the router would.
func serve(t *testing.T, e *echo.Echo, req *http.Request, h echo.HandlerFunc, setup func(c echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	if req.Body != nil && req.Header.Get(echo.HeaderContentType) == "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func asUser(id string, role domain.Role) func(c echo.Context) {
	return func(c echo.Context) {
		c.Set(middleware.KeyUserID, id)
		c.Set(middleware.KeyRole, string(role))
	}
}

func withParam(name, value string, next func(c echo.Context)) func(c echo.Context) {
	return func(c echo.Context) {
		c.SetParamNames(name)
		c.SetParamValues(value)
		if next != nil {
			next(c)
		}
	}
}

func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}
