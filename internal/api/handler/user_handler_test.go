package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

func aliceUser() *domain.User {
	return &domain.User{
		ID:        "u1",
		Name:      "Alice",
		Email:     "alice@example.com",
		Role:      domain.RoleUser,
		Status:    domain.StatusActive,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestUserHandler_List_DefaultsAndEnvelope(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
			if in.Page != 1 || in.Limit != 10 || in.Search != "ali" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ListUsersResult{
				Items:      []ports.UserSummary{{User: aliceUser(), PostCount: 3}},
				Total:      11,
				Page:       1,
				Limit:      10,
				TotalPages: 2,
			}, nil
		},
	}
	h := NewUserHandler(stub)

	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/api/users?search=ali", nil), h.List, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeBody(t, rec.Body)
	if resp["status"] != "success" || resp["message"] == "" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	users := resp["users"].([]any)
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	u := users[0].(map[string]any)
	if u["email"] != "alice@example.com" || u["postCount"] != float64(3) {
		t.Fatalf("unexpected user payload: %+v", u)
	}
	if _, leaked := u["passwordHash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
	p := resp["pagination"].(map[string]any)
	if p["total"] != float64(11) || p["pages"] != float64(2) {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestUserHandler_List_RejectsBadPagination(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		listFn: func(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	for _, q := range []string{"page=0", "page=abc", "limit=-5", "limit=1.5"} {
		rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/api/users?"+q, nil), h.List, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, rec.Code)
		}
	}
}

func TestUserHandler_List_CapsLimit(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		listFn: func(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
			if in.Limit != maxLimit {
				t.Fatalf("expected limit %d, got %d", maxLimit, in.Limit)
			}
			return &ports.ListUsersResult{Page: in.Page, Limit: in.Limit}, nil
		},
	})

	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/api/users?limit=5000", nil), h.List, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_List_AcceptsHugePage(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		listFn: func(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
			if in.Page != 100000000000000000 {
				t.Fatalf("expected the page to pass through, got %d", in.Page)
			}
			return &ports.ListUsersResult{Total: 4, Page: in.Page, Limit: in.Limit, TotalPages: 1}, nil
		},
	})

	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/api/users?page=100000000000000000&limit=100", nil), h.List, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	p := decodeBody(t, rec.Body)["pagination"].(map[string]any)
	if p["total"] != float64(4) {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestUserHandler_List_InternalError(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		listFn: func(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
			return nil, errors.New("connection reset")
		},
	})

	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/api/users", nil), h.List, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	resp := decodeBody(t, rec.Body)
	if resp["status"] != "error" || resp["message"] != "Failed to fetch users" || resp["error"] != "connection reset" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		getFn: func(ctx context.Context, id string) (*ports.UserDetail, error) {
			return nil, domain.ErrUserNotFound
		},
	})

	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/", nil), h.Get, withParam("id", "missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decodeBody(t, rec.Body)
	if resp["status"] != "error" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if _, ok := resp["error"]; ok {
		t.Fatalf("diagnostic must only appear on 500s: %+v", resp)
	}
}

func TestUserHandler_Get_IncludesPosts(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		getFn: func(ctx context.Context, id string) (*ports.UserDetail, error) {
			return &ports.UserDetail{User: aliceUser(), Posts: []*domain.Post{{ID: "p1", Title: "Hello", AuthorID: "u1"}}}, nil
		},
	})

	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/", nil), h.Get, withParam("id", "u1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	user := decodeBody(t, rec.Body)["user"].(map[string]any)
	posts := user["posts"].([]any)
	if len(posts) != 1 || posts[0].(map[string]any)["title"] != "Hello" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email != "alice@example.com" {
				t.Fatalf("expected normalized email, got %q", email)
			}
			return nil, domain.ErrUserNotFound
		},
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Name != "Alice" || in.ActorID != "admin-1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return aliceUser(), nil
		},
	})

	body := strings.NewReader(`{"name":"Alice","email":" Alice@Example.com ","unknown":"ignored"}`)
	rec := serve(t, e, httptest.NewRequest(http.MethodPost, "/api/users", body), h.Create, asUser("admin-1", domain.RoleAdmin))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec.Body)
	if resp["status"] != "success" || resp["user"].(map[string]any)["id"] != "u1" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestUserHandler_Create_Validation(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	for _, body := range []string{`{"email":"a@example.com"}`, `{"name":"A","email":"not-an-email"}`, `not-json`} {
		rec := serve(t, e, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body)), h.Create, asUser("admin-1", domain.RoleAdmin))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return aliceUser(), nil
		},
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`)
	rec := serve(t, e, httptest.NewRequest(http.MethodPost, "/api/users", body), h.Create, asUser("admin-1", domain.RoleAdmin))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_Update_InvalidStatusPersistsNothing(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		getFn: func(ctx context.Context, id string) (*ports.UserDetail, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
		updateFn: func(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"status":"archived"}`)
	rec := serve(t, e, httptest.NewRequest(http.MethodPatch, "/", body), h.Update, withParam("id", "u1", asUser("admin-1", domain.RoleAdmin)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec.Body)
	if !strings.Contains(resp["message"].(string), "active") {
		t.Fatalf("unexpected message: %+v", resp)
	}
}

func TestUserHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		getFn: func(ctx context.Context, id string) (*ports.UserDetail, error) {
			return nil, domain.ErrUserNotFound
		},
		updateFn: func(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"name":"Bob"}`)
	rec := serve(t, e, httptest.NewRequest(http.MethodPatch, "/", body), h.Update, withParam("id", "u1", asUser("admin-1", domain.RoleAdmin)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Update_EmailTakenByAnotherUser(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		getFn: func(ctx context.Context, id string) (*ports.UserDetail, error) {
			return &ports.UserDetail{User: aliceUser()}, nil
		},
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u2", Email: email}, nil
		},
		updateFn: func(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"email":"bob@example.com"}`)
	rec := serve(t, e, httptest.NewRequest(http.MethodPatch, "/", body), h.Update, withParam("id", "u1", asUser("admin-1", domain.RoleAdmin)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_Update_SameEmailSkipsLookup(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		getFn: func(ctx context.Context, id string) (*ports.UserDetail, error) {
			return &ports.UserDetail{User: aliceUser()}, nil
		},
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
		updateFn: func(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
			if *in.Patch.Email != "alice@example.com" || in.ActorID != "admin-1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return aliceUser(), nil
		},
	})

	body := strings.NewReader(`{"email":"ALICE@example.com"}`)
	rec := serve(t, e, httptest.NewRequest(http.MethodPatch, "/", body), h.Update, withParam("id", "u1", asUser("admin-1", domain.RoleAdmin)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_Update_RoleChangeRequiresAdmin(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	body := strings.NewReader(`{"role":"ADMIN"}`)
	rec := serve(t, e, httptest.NewRequest(http.MethodPatch, "/", body), h.Update, withParam("id", "u1", asUser("mgr-1", domain.RoleManager)))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUserHandler_Update_VanishedBetweenCheckAndWrite(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		getFn: func(ctx context.Context, id string) (*ports.UserDetail, error) {
			return &ports.UserDetail{User: aliceUser()}, nil
		},
		updateFn: func(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	})

	body := strings.NewReader(`{"name":"Bob"}`)
	rec := serve(t, e, httptest.NewRequest(http.MethodPatch, "/", body), h.Update, withParam("id", "u1", asUser("admin-1", domain.RoleAdmin)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	h := NewUserHandler(&stubUserService{
		getFn: func(ctx context.Context, id string) (*ports.UserDetail, error) {
			return &ports.UserDetail{User: aliceUser()}, nil
		},
		deleteFn: func(ctx context.Context, id, actorID string) error {
			deleted = id
			return nil
		},
	})

	rec := serve(t, e, httptest.NewRequest(http.MethodDelete, "/", nil), h.Delete, withParam("id", "u1", asUser("admin-1", domain.RoleAdmin)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "u1" {
		t.Fatalf("expected u1 deleted, got %q", deleted)
	}
	if resp := decodeBody(t, rec.Body); resp["status"] != "success" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{
		getFn: func(ctx context.Context, id string) (*ports.UserDetail, error) {
			return nil, domain.ErrUserNotFound
		},
		deleteFn: func(ctx context.Context, id, actorID string) error {
			t.Fatalf("should not be called")
			return nil
		},
	})

	rec := serve(t, e, httptest.NewRequest(http.MethodDelete, "/", nil), h.Delete, withParam("id", "nope", asUser("admin-1", domain.RoleAdmin)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
