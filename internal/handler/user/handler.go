package user

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/mindloom/companion-ai/backend/internal/middleware"
	usermodel "github.com/mindloom/companion-ai/backend/internal/model/user"
	"github.com/mindloom/companion-ai/backend/pkg/utils"
)

// Store persists profile updates.
type Store interface {
	UpdateUser(ctx context.Context, u *usermodel.User) error
}

// Handler serves the authenticated user's profile.
type Handler struct {
	store Store
}

// New creates the user handler.
func New(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the profile endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users/me", h.handleProfile)
	r.Patch("/users/me", h.handleUpdate)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	utils.RespondJSON(w, http.StatusOK, u)
}

// handleUpdate applies partial settings changes. Absent fields are left
// untouched, which is why the payload uses pointers.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		DisplayName    *string `json:"displayName"`
		HistoryEnabled *bool   `json:"historyEnabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.DisplayName != nil {
		name := strings.TrimSpace(*payload.DisplayName)
		if name == "" {
			utils.RespondError(w, http.StatusBadRequest, "displayName must not be empty")
			return
		}
		u.DisplayName = name
	}
	if payload.HistoryEnabled != nil {
		u.HistoryEnabled = *payload.HistoryEnabled
	}

	if err := h.store.UpdateUser(r.Context(), u); err != nil {
		logrus.WithError(err).Error("profile update failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	utils.RespondJSON(w, http.StatusOK, u)
}
