package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/osama171998/minna-app/internal/http/response"
	"github.com/osama171998/minna-app/internal/observability"
	"github.com/osama171998/minna-app/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthServiceInterface
}

func NewAuthHandler(authSvc service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	outcome := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "register", outcome, time.Since(start))
	}()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		outcome = "failure"
		observability.RecordAuthRegister(r.Context(), "failure")
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	user, err := h.authSvc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		outcome = "failure"
		observability.RecordAuthRegister(r.Context(), "failure")
		if errors.Is(err, service.ErrAlreadyExists) {
			observability.Audit(r, "auth.register.conflict")
			response.Error(w, r, http.StatusBadRequest, "ALREADY_EXISTS", err.Error(), nil)
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "registration failed", nil)
		return
	}
	observability.Audit(r, "auth.register.success", "user_id", user.ID.Hex())
	observability.RecordAuthRegister(r.Context(), "success")
	response.JSON(w, r, http.StatusCreated, user)
}

// Login consumes the OAuth2 password form (username/password fields) and
// returns a bearer token. Unknown email and wrong password produce the
// same 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	outcome := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "login", outcome, time.Since(start))
	}()

	if err := r.ParseForm(); err != nil {
		outcome = "failure"
		observability.RecordAuthLogin(r.Context(), "failure")
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid form body", nil)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.authSvc.Login(r.Context(), username, password)
	if err != nil {
		outcome = "failure"
		observability.RecordAuthLogin(r.Context(), "failure")
		if errors.Is(err, service.ErrInvalidCredentials) {
			observability.Audit(r, "auth.login.failed")
			w.Header().Set("WWW-Authenticate", "Bearer")
			response.Error(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error(), nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "login failed", nil)
		return
	}
	observability.Audit(r, "auth.login.success")
	observability.RecordAuthLogin(r.Context(), "success")
	response.JSON(w, r, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
