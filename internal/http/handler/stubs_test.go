package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/osama171998/minna-app/internal/domain"
	"github.com/osama171998/minna-app/internal/http/middleware"
	"github.com/osama171998/minna-app/internal/service"
)

type stubAuthService struct {
	registerFn  func(ctx context.Context, email, password string) (*domain.User, error)
	loginFn     func(ctx context.Context, email, password string) (string, error)
	authorizeFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authorize(ctx context.Context, token string) (*domain.User, error) {
	return s.authorizeFn(ctx, token)
}

type stubUserService struct {
	updateFn func(ctx context.Context, user *domain.User, update service.ProfileUpdate) (*domain.User, error)
	deleteFn func(ctx context.Context, user *domain.User) error
}

func (s *stubUserService) UpdateSelf(ctx context.Context, user *domain.User, update service.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, user, update)
}

func (s *stubUserService) DeleteSelf(ctx context.Context, user *domain.User) error {
	return s.deleteFn(ctx, user)
}

type stubInstagramService struct {
	byDateFn  func(ctx context.Context, userID, startDate, endDate string) ([]domain.Post, error)
	byLinksFn func(ctx context.Context, userID string, postLinks []string) ([]domain.Post, error)
}

func (s *stubInstagramService) ScrapeByDateRange(ctx context.Context, userID, startDate, endDate string) ([]domain.Post, error) {
	return s.byDateFn(ctx, userID, startDate, endDate)
}

func (s *stubInstagramService) ScrapeByLinks(ctx context.Context, userID string, postLinks []string) ([]domain.Post, error) {
	return s.byLinksFn(ctx, userID, postLinks)
}

type stubAnalysisService struct {
	analyzeFn func(ctx context.Context, userID string, posts []domain.Post) (*domain.AnalysisResult, error)
}

func (s *stubAnalysisService) AnalyzeEngagement(ctx context.Context, userID string, posts []domain.Post) (*domain.AnalysisResult, error) {
	return s.analyzeFn(ctx, userID, posts)
}

func testUser() *domain.User {
	return &domain.User{
		ID:    primitive.NewObjectID(),
		Email: "alice@example.com",
	}
}

func withTestUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), user))
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	code, _ := env["error"]["code"].(string)
	return code
}
