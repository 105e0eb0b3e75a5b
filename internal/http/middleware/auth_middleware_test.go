package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/osama171998/minna-app/internal/domain"
	"github.com/osama171998/minna-app/internal/service"
)

type stubAuthorizer struct {
	authorizeFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthorizer) Register(context.Context, string, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthorizer) Login(context.Context, string, string) (string, error) {
	return "", nil
}

func (s *stubAuthorizer) Authorize(ctx context.Context, token string) (*domain.User, error) {
	return s.authorizeFn(ctx, token)
}

func authedHandler(t *testing.T, want *domain.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			t.Fatal("user missing from context")
		}
		if want != nil && user.ID != want.ID {
			t.Fatalf("wrong user in context: %s", user.ID.Hex())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateValidToken(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	svc := &stubAuthorizer{
		authorizeFn: func(_ context.Context, token string) (*domain.User, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token %q", token)
			}
			return user, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	Authenticate(svc)(authedHandler(t, user)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	svc := &stubAuthorizer{
		authorizeFn: func(context.Context, string) (*domain.User, error) {
			t.Fatal("authorize should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	})
	Authenticate(svc)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer, got %q", got)
	}
}

func TestAuthenticateRejectedToken(t *testing.T) {
	svc := &stubAuthorizer{
		authorizeFn: func(context.Context, string) (*domain.User, error) {
			return nil, service.ErrUnauthenticated
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	})
	Authenticate(svc)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var env map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if code := env["error"]["code"]; code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %v", code)
	}
}

func TestAuthenticateNonBearerScheme(t *testing.T) {
	svc := &stubAuthorizer{
		authorizeFn: func(context.Context, string) (*domain.User, error) {
			t.Fatal("authorize should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	})
	Authenticate(svc)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
