package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Liveness(t *testing.T) {
	e := newTestEcho()
	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/health", nil), NewHealthHandler().Liveness, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	e := newTestEcho()
	h := NewHealthDependenciesHandler(map[string]ports.Pinger{
		"store": pingFunc(func(ctx context.Context) error { return nil }),
		"redis": pingFunc(func(ctx context.Context) error { return errors.New("dial tcp: refused") }),
	})

	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/health/ready", nil), h.Readiness, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	deps := decodeBody(t, rec.Body)["dependencies"].(map[string]any)
	if deps["store"].(map[string]any)["status"] != "ok" || deps["redis"].(map[string]any)["status"] != "unhealthy" {
		t.Fatalf("unexpected dependencies: %+v", deps)
	}
}

type stubStatusService struct {
	status *ports.StoreStatus
}

func (s *stubStatusService) Check(ctx context.Context) *ports.StoreStatus { return s.status }

func TestStatusHandler_Store(t *testing.T) {
	checked := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	e := newTestEcho()
	h := NewStatusHandler(&stubStatusService{status: &ports.StoreStatus{Connected: true, Users: 4, Posts: 9, LastChecked: checked}})
	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/api/db/status", nil), h.Store, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec.Body)
	stats := resp["stats"].(map[string]any)
	if resp["status"] != "success" || stats["users"] != float64(4) || stats["posts"] != float64(9) {
		t.Fatalf("unexpected body: %+v", resp)
	}

	h = NewStatusHandler(&stubStatusService{status: &ports.StoreStatus{Connected: false, Error: "server selection timeout"}})
	rec = serve(t, e, httptest.NewRequest(http.MethodGet, "/api/db/status", nil), h.Store, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec.Body); resp["status"] != "error" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

type stubActivityService struct {
	listFn func(ctx context.Context, in ports.ListActivitiesInput) (*ports.ListActivitiesResult, error)
}

func (s *stubActivityService) Process(ctx context.Context, a domain.Activity) error { return nil }

func (s *stubActivityService) List(ctx context.Context, in ports.ListActivitiesInput) (*ports.ListActivitiesResult, error) {
	return s.listFn(ctx, in)
}

func TestActivityHandler_List(t *testing.T) {
	e := newTestEcho()
	h := NewActivityHandler(&stubActivityService{
		listFn: func(ctx context.Context, in ports.ListActivitiesInput) (*ports.ListActivitiesResult, error) {
			if in.UserID != "u1" {
				t.Fatalf("expected userId filter, got %q", in.UserID)
			}
			return &ports.ListActivitiesResult{
				Items: []*domain.Activity{{ID: "a1", UserID: "u1", Action: domain.ActionLogin, Description: "Signed in"}},
				Total: 1, Page: 1, Limit: 10, TotalPages: 1,
			}, nil
		},
	})

	rec := serve(t, e, httptest.NewRequest(http.MethodGet, "/api/activities?userId=u1", nil), h.List, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items := decodeBody(t, rec.Body)["activities"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["action"] != "login" {
		t.Fatalf("unexpected activities: %+v", items)
	}
}
