package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/osama171998/minna-app/internal/domain"
)

const scrapeConcurrency = 4

// InstagramService is a placeholder scraper. It returns fixed mock posts
// attributed to the requesting user; the fan-out structure is where real
// per-link fetches would go.
//
// TODO: replace the mock payloads with a real Instagram API integration.
type InstagramService struct{}

func NewInstagramService() *InstagramService {
	return &InstagramService{}
}

func (s *InstagramService) ScrapeByDateRange(ctx context.Context, userID, startDate, endDate string) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.Post{mockPost(userID, "123", "This is a mock post.", 10, 5, 100)}, nil
}

func (s *InstagramService) ScrapeByLinks(ctx context.Context, userID string, postLinks []string) ([]domain.Post, error) {
	if len(postLinks) == 0 {
		return []domain.Post{mockPost(userID, "456", "This is another mock post.", 20, 10, 200)}, nil
	}

	posts := make([]domain.Post, len(postLinks))
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scrapeConcurrency)
	for i, link := range postLinks {
		g.Go(func() error {
			post, err := s.scrapeLink(ctx, userID, link)
			if err != nil {
				return err
			}
			mu.Lock()
			posts[i] = post
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *InstagramService) scrapeLink(ctx context.Context, userID, link string) (domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return domain.Post{}, err
	}
	return mockPost(userID, "456", "This is another mock post.", 20, 10, 200), nil
}

func mockPost(userID, instagramPostID, caption string, likes, shares, views int) domain.Post {
	return domain.Post{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		InstagramPostID: instagramPostID,
		Caption:         caption,
		Likes:           likes,
		Shares:          shares,
		ViewCount:       views,
		ScrapedAt:       time.Now().UTC(),
		Comments:        []domain.Comment{},
	}
}
