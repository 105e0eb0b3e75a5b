package service

import (
	"context"

	"github.com/osama171998/minna-app/internal/domain"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authorize(ctx context.Context, token string) (*domain.User, error)
}

type UserServiceInterface interface {
	UpdateSelf(ctx context.Context, user *domain.User, update ProfileUpdate) (*domain.User, error)
	DeleteSelf(ctx context.Context, user *domain.User) error
}

type InstagramServiceInterface interface {
	ScrapeByDateRange(ctx context.Context, userID, startDate, endDate string) ([]domain.Post, error)
	ScrapeByLinks(ctx context.Context, userID string, postLinks []string) ([]domain.Post, error)
}

type AnalysisServiceInterface interface {
	AnalyzeEngagement(ctx context.Context, userID string, posts []domain.Post) (*domain.AnalysisResult, error)
}

// ProfileUpdate carries the optional fields of a self-service profile
// update; nil means "leave unchanged".
type ProfileUpdate struct {
	Email    *string
	Password *string
}
