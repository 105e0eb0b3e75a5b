package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osama171998/minna-app/internal/domain"
	"github.com/osama171998/minna-app/internal/http/middleware"
	"github.com/osama171998/minna-app/internal/http/response"
	"github.com/osama171998/minna-app/internal/observability"
	"github.com/osama171998/minna-app/internal/service"
)

type AnalysisHandler struct {
	analysisSvc service.AnalysisServiceInterface
}

func NewAnalysisHandler(analysisSvc service.AnalysisServiceInterface) *AnalysisHandler {
	return &AnalysisHandler{analysisSvc: analysisSvc}
}

// Analyze takes a list of post records and returns the engagement summary.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}
	var posts []domain.Post
	if err := json.NewDecoder(r.Body).Decode(&posts); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	result, err := h.analysisSvc.AnalyzeEngagement(r.Context(), user.ID.Hex(), posts)
	if err != nil {
		observability.RecordAnalysis(r.Context(), "failure")
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "analysis failed", nil)
		return
	}
	observability.RecordAnalysis(r.Context(), "success")
	response.JSON(w, r, http.StatusOK, result)
}
