package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osama171998/minna-app/internal/http/middleware"
	"github.com/osama171998/minna-app/internal/http/response"
	"github.com/osama171998/minna-app/internal/observability"
	"github.com/osama171998/minna-app/internal/service"
)

type UserHandler struct {
	userSvc service.UserServiceInterface
}

func NewUserHandler(userSvc service.UserServiceInterface) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

type updateMeRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

// UpdateMe applies a partial update to the caller's own record. The target
// is always the authorized identity; no id is read from the body.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}
	var req updateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	updated, err := h.userSvc.UpdateSelf(r.Context(), user, service.ProfileUpdate{Email: req.Email, Password: req.Password})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		case errors.Is(err, service.ErrAlreadyExists):
			response.Error(w, r, http.StatusBadRequest, "ALREADY_EXISTS", err.Error(), nil)
		case errors.Is(err, service.ErrInvalidInput):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "update failed", nil)
		}
		return
	}
	observability.Audit(r, "user.update.success", "user_id", user.ID.Hex())
	response.JSON(w, r, http.StatusOK, updated)
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}
	if err := h.userSvc.DeleteSelf(r.Context(), user); err != nil && !errors.Is(err, service.ErrNotFound) {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "delete failed", nil)
		return
	}
	observability.Audit(r, "user.delete.success", "user_id", user.ID.Hex())
	response.NoContent(w)
}
