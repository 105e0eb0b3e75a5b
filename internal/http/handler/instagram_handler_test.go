package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/osama171998/minna-app/internal/domain"
)

func TestScrapeByDate(t *testing.T) {
	user := testUser()
	svc := &stubInstagramService{
		byDateFn: func(_ context.Context, userID, startDate, endDate string) ([]domain.Post, error) {
			if userID != user.ID.Hex() {
				t.Fatalf("posts attributed to wrong user: %q", userID)
			}
			if startDate != "2024-01-01" || endDate != "2024-01-31" {
				t.Fatalf("unexpected range: %q .. %q", startDate, endDate)
			}
			return []domain.Post{{ID: primitive.NewObjectID(), UserID: userID, InstagramPostID: "123"}}, nil
		},
	}
	h := NewInstagramHandler(svc)

	req := withTestUser(httptest.NewRequest(http.MethodPost, "/api/v1/instagram/scrape-by-date",
		strings.NewReader(`{"start_date":"2024-01-01","end_date":"2024-01-31"}`)), user)
	rec := httptest.NewRecorder()
	h.ScrapeByDate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var posts []domain.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(posts) != 1 || posts[0].InstagramPostID != "123" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestScrapeByLinks(t *testing.T) {
	user := testUser()
	svc := &stubInstagramService{
		byLinksFn: func(_ context.Context, userID string, postLinks []string) ([]domain.Post, error) {
			if len(postLinks) != 2 {
				t.Fatalf("expected 2 links, got %d", len(postLinks))
			}
			out := make([]domain.Post, len(postLinks))
			for i := range postLinks {
				out[i] = domain.Post{ID: primitive.NewObjectID(), UserID: userID, InstagramPostID: "456"}
			}
			return out, nil
		},
	}
	h := NewInstagramHandler(svc)

	req := withTestUser(httptest.NewRequest(http.MethodPost, "/api/v1/instagram/scrape-by-links",
		strings.NewReader(`{"post_links":["https://instagram.com/p/a","https://instagram.com/p/b"]}`)), user)
	rec := httptest.NewRecorder()
	h.ScrapeByLinks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var posts []domain.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
}

func TestScrapeByDateServiceFailure(t *testing.T) {
	svc := &stubInstagramService{
		byDateFn: func(context.Context, string, string, string) ([]domain.Post, error) {
			return nil, errors.New("upstream down")
		},
	}
	h := NewInstagramHandler(svc)

	req := withTestUser(httptest.NewRequest(http.MethodPost, "/api/v1/instagram/scrape-by-date",
		strings.NewReader(`{"start_date":"2024-01-01","end_date":"2024-01-31"}`)), testUser())
	rec := httptest.NewRecorder()
	h.ScrapeByDate(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "INTERNAL" {
		t.Fatalf("expected INTERNAL, got %q", code)
	}
}

func TestScrapeByLinksMalformedBody(t *testing.T) {
	h := NewInstagramHandler(&stubInstagramService{})

	req := withTestUser(httptest.NewRequest(http.MethodPost, "/api/v1/instagram/scrape-by-links",
		strings.NewReader(`not json`)), testUser())
	rec := httptest.NewRecorder()
	h.ScrapeByLinks(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
