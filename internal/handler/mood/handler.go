package mood

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/mindloom/companion-ai/backend/internal/middleware"
	moodmodel "github.com/mindloom/companion-ai/backend/internal/model/mood"
	"github.com/mindloom/companion-ai/backend/internal/storage"
	"github.com/mindloom/companion-ai/backend/pkg/utils"
)

const dateLayout = "2006-01-02"

// Store is the slice of persistence the mood endpoints need.
type Store interface {
	MoodEntries(ctx context.Context, userID, start, end string) ([]moodmodel.Entry, error)
	CreateMoodEntry(ctx context.Context, entry *moodmodel.Entry) error
	DeleteMoodEntry(ctx context.Context, userID string, id uint) error
}

// Handler serves the mood journal endpoints.
type Handler struct {
	store Store
}

// New creates the mood handler.
func New(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the mood journal endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/mood/entries", h.handleList)
	r.Post("/mood/entries", h.handleCreate)
	r.Delete("/mood/entries/{entryID}", h.handleDelete)
}

// handleList returns entries in ascending date order, optionally bounded by
// inclusive start/end dates.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	for _, value := range []string{start, end} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, value); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
			return
		}
	}

	entries, err := h.store.MoodEntries(r.Context(), u.ID, start, end)
	if err != nil {
		logrus.WithError(err).Error("mood listing failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to load mood entries")
		return
	}
	if entries == nil {
		entries = []moodmodel.Entry{}
	}

	utils.RespondJSON(w, http.StatusOK, entries)
}

// handleCreate logs a manual mood entry.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		Mood   string `json:"mood"`
		Source string `json:"source"`
		Date   string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Mood == "" {
		utils.RespondError(w, http.StatusBadRequest, "mood is required")
		return
	}
	if _, err := time.Parse(dateLayout, payload.Date); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if payload.Source == "" {
		payload.Source = "manual"
	}

	entry := &moodmodel.Entry{
		UserID: u.ID,
		Mood:   payload.Mood,
		Source: payload.Source,
		Date:   payload.Date,
	}
	if err := h.store.CreateMoodEntry(r.Context(), entry); err != nil {
		logrus.WithError(err).Error("mood entry creation failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to create mood entry")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}

// handleDelete removes one of the user's own entries.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.store.DeleteMoodEntry(r.Context(), u.ID, uint(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "mood entry not found")
			return
		}
		logrus.WithError(err).Error("mood entry deletion failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete mood entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
