package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osama171998/minna-app/internal/http/middleware"
	"github.com/osama171998/minna-app/internal/http/response"
	"github.com/osama171998/minna-app/internal/observability"
	"github.com/osama171998/minna-app/internal/service"
)

type InstagramHandler struct {
	instagramSvc service.InstagramServiceInterface
}

func NewInstagramHandler(instagramSvc service.InstagramServiceInterface) *InstagramHandler {
	return &InstagramHandler{instagramSvc: instagramSvc}
}

type scrapeByDateRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type scrapeByLinksRequest struct {
	PostLinks []string `json:"post_links"`
}

func (h *InstagramHandler) ScrapeByDate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}
	var req scrapeByDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	posts, err := h.instagramSvc.ScrapeByDateRange(r.Context(), user.ID.Hex(), req.StartDate, req.EndDate)
	if err != nil {
		observability.RecordScrape(r.Context(), "by_date", "failure")
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "scrape failed", nil)
		return
	}
	observability.RecordScrape(r.Context(), "by_date", "success")
	response.JSON(w, r, http.StatusOK, posts)
}

func (h *InstagramHandler) ScrapeByLinks(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}
	var req scrapeByLinksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	posts, err := h.instagramSvc.ScrapeByLinks(r.Context(), user.ID.Hex(), req.PostLinks)
	if err != nil {
		observability.RecordScrape(r.Context(), "by_links", "failure")
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "scrape failed", nil)
		return
	}
	observability.RecordScrape(r.Context(), "by_links", "success")
	response.JSON(w, r, http.StatusOK, posts)
}
