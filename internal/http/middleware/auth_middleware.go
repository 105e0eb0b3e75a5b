package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/osama171998/minna-app/internal/domain"
	"github.com/osama171998/minna-app/internal/http/response"
	"github.com/osama171998/minna-app/internal/observability"
	"github.com/osama171998/minna-app/internal/service"
)

type contextKey string

const userContextKey contextKey = "current_user"

// Authenticate verifies the bearer token and resolves the caller's identity
// record before the handler runs. Every failure is the same 401 with a
// WWW-Authenticate challenge; missing, tampered and expired tokens are not
// told apart.
func Authenticate(authSvc service.AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				observability.RecordTokenValidation(r.Context(), "missing")
				unauthorized(w, r, "missing access token")
				return
			}
			user, err := authSvc.Authorize(r.Context(), raw)
			if err != nil {
				observability.RecordTokenValidation(r.Context(), "invalid")
				unauthorized(w, r, "could not validate credentials")
				return
			}
			observability.RecordTokenValidation(r.Context(), "valid")
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the identity record resolved by Authenticate.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userContextKey).(*domain.User)
	return u, ok
}

// WithUser is a test helper mirror of what Authenticate stores.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}
