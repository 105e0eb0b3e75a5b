package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/osama171998/minna-app/internal/config"
	"github.com/osama171998/minna-app/internal/domain"
	"github.com/osama171998/minna-app/internal/http/handler"
	"github.com/osama171998/minna-app/internal/http/middleware"
	"github.com/osama171998/minna-app/internal/service"
)

type routerAuthStub struct {
	user  *domain.User
	token string
}

func (s *routerAuthStub) Register(_ context.Context, email, _ string) (*domain.User, error) {
	return &domain.User{ID: primitive.NewObjectID(), Email: email}, nil
}

func (s *routerAuthStub) Login(context.Context, string, string) (string, error) {
	return s.token, nil
}

func (s *routerAuthStub) Authorize(_ context.Context, token string) (*domain.User, error) {
	if token != s.token {
		return nil, service.ErrUnauthenticated
	}
	return s.user, nil
}

type routerUserStub struct{}

func (routerUserStub) UpdateSelf(_ context.Context, user *domain.User, _ service.ProfileUpdate) (*domain.User, error) {
	return user, nil
}

func (routerUserStub) DeleteSelf(context.Context, *domain.User) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *routerAuthStub) {
	t.Helper()
	auth := &routerAuthStub{
		user:  &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com"},
		token: "valid-token",
	}
	cfg := &config.Config{CORSAllowedOrigins: []string{"http://localhost:3000"}}
	h := New(Dependencies{
		Config:           cfg,
		AuthHandler:      handler.NewAuthHandler(auth),
		UserHandler:      handler.NewUserHandler(routerUserStub{}),
		InstagramHandler: handler.NewInstagramHandler(service.NewInstagramService()),
		AnalysisHandler:  handler.NewAnalysisHandler(service.NewAnalysisService()),
		AuthService:      auth,
		AuthRateLimiter:  middleware.NewRateLimiter(100, time.Minute),
		APIRateLimiter:   middleware.NewRateLimiter(1000, time.Minute),
	})
	return h, auth
}

func TestRouterHealth(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, path := range []string{"/health/live", "/api/v1/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode body: %v", path, err)
		}
		if body["status"] != "ok" {
			t.Fatalf("%s: unexpected body %v", path, body)
		}
	}
}

func TestRouterReadinessWithoutProbes(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	h, _ := newTestRouter(t)

	protected := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodPut, "/api/v1/users/me"},
		{http.MethodDelete, "/api/v1/users/me"},
		{http.MethodPost, "/api/v1/instagram/scrape-by-date"},
		{http.MethodPost, "/api/v1/instagram/scrape-by-links"},
		{http.MethodPost, "/api/v1/analysis/"},
	}
	for _, tc := range protected {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
		if rec.Header().Get("WWW-Authenticate") != "Bearer" {
			t.Fatalf("%s %s: missing WWW-Authenticate challenge", tc.method, tc.path)
		}
	}
}

func TestRouterAuthorizedFlow(t *testing.T) {
	h, auth := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+auth.token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Email != auth.user.Email {
		t.Fatalf("unexpected user %q", body.Email)
	}
}

func TestRouterScrapeByLinks(t *testing.T) {
	h, auth := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/instagram/scrape-by-links",
		strings.NewReader(`{"post_links":["https://instagram.com/p/a"]}`))
	req.Header.Set("Authorization", "Bearer "+auth.token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var posts []domain.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(posts) != 1 || posts[0].UserID != auth.user.ID.Hex() {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}
