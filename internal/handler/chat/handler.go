package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/mindloom/companion-ai/backend/internal/middleware"
	chatmodel "github.com/mindloom/companion-ai/backend/internal/model/chat"
	"github.com/mindloom/companion-ai/backend/internal/service/conversation"
	"github.com/mindloom/companion-ai/backend/pkg/utils"
)

const defaultHistoryLimit = 50

// History lists a user's most recent messages, oldest first.
type History interface {
	RecentMessages(ctx context.Context, userID string, limit int) ([]chatmodel.Message, error)
}

// Handler serves the conversation endpoints.
type Handler struct {
	conversations *conversation.Service
	history       History
}

// New creates the chat handler.
func New(conversations *conversation.Service, history History) *Handler {
	return &Handler{conversations: conversations, history: history}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/respond", h.handleRespond)
	r.Get("/chat/history", h.handleHistory)
}

// handleRespond runs one conversation turn.
func (h *Handler) handleRespond(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		Message      string `json:"message"`
		Language     string `json:"language"`
		MoodOverride string `json:"moodOverride"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.conversations.Respond(r.Context(), u, conversation.Turn{
		Message:      payload.Message,
		Language:     payload.Language,
		MoodOverride: payload.MoodOverride,
	})
	if err != nil {
		if errors.Is(err, conversation.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, "message is required")
			return
		}
		logrus.WithError(err).Error("conversation turn failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// handleHistory returns recent messages for the authenticated user. Users
// with history disabled always see an empty list.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if !u.HistoryEnabled {
		utils.RespondJSON(w, http.StatusOK, []chatmodel.Message{})
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.RespondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	messages, err := h.history.RecentMessages(r.Context(), u.ID, limit)
	if err != nil {
		logrus.WithError(err).Error("history lookup failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if messages == nil {
		messages = []chatmodel.Message{}
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}
