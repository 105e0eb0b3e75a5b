package service

import (
	"context"

	"github.com/osama171998/minna-app/internal/domain"
)

// AnalysisService is a placeholder engagement analyzer returning a fixed
// summary regardless of input.
//
// TODO: replace the canned result with a real model-backed analysis.
type AnalysisService struct{}

func NewAnalysisService() *AnalysisService {
	return &AnalysisService{}
}

func (s *AnalysisService) AnalyzeEngagement(ctx context.Context, userID string, posts []domain.Post) (*domain.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &domain.AnalysisResult{
		Summary: "This is a placeholder summary.",
		Topics: []domain.TopicCount{
			{Topic: "Topic 1", Count: 10},
			{Topic: "Topic 2", Count: 20},
			{Topic: "Topic 3", Count: 30},
		},
	}, nil
}
