package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	authservice "github.com/mindloom/companion-ai/backend/internal/service/auth"
	"github.com/mindloom/companion-ai/backend/internal/storage"
	"github.com/mindloom/companion-ai/backend/pkg/utils"
)

// Handler serves registration and login.
type Handler struct {
	auth *authservice.Service
}

// New creates the auth handler.
func New(auth *authservice.Service) *Handler {
	return &Handler{auth: auth}
}

// RegisterRoutes mounts the public auth endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(payload.Email))
	if email == "" || !strings.Contains(email, "@") {
		utils.RespondError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "password is required")
		return
	}

	u, err := h.auth.Register(r.Context(), email, payload.Password, strings.TrimSpace(payload.DisplayName))
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			utils.RespondError(w, http.StatusBadRequest, "email already registered")
			return
		}
		logrus.WithError(err).Error("registration failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, u)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), strings.TrimSpace(strings.ToLower(payload.Email)), payload.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			utils.RespondError(w, http.StatusUnauthorized, "incorrect email or password")
			return
		}
		logrus.WithError(err).Error("login failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
