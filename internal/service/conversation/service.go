package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mindloom/companion-ai/backend/internal/analysis/language"
	"github.com/mindloom/companion-ai/backend/internal/analysis/sentiment"
	"github.com/mindloom/companion-ai/backend/internal/model/chat"
	"github.com/mindloom/companion-ai/backend/internal/model/mood"
	"github.com/mindloom/companion-ai/backend/internal/model/user"
)

var ErrEmptyMessage = errors.New("message is required")

// Turn is one incoming user utterance. Language and MoodOverride are
// optional; when set they take precedence over detection.
type Turn struct {
	Message      string
	Language     string
	MoodOverride string
}

// Result is what the pipeline derives from a turn. It is returned to the
// caller whether or not anything was persisted.
type Result struct {
	Reply     string    `json:"reply"`
	Language  string    `json:"language"`
	Sentiment string    `json:"sentiment"`
	Mood      string    `json:"mood"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder persists the records of one turn as a single atomic unit.
type Recorder interface {
	RecordTurn(ctx context.Context, userMsg, aiMsg *chat.Message, entry *mood.Entry) error
}

// Service runs the conversation pipeline: resolve language, sentiment and
// mood, format the reply, and persist the turn when the user keeps history.
type Service struct {
	recorder Recorder
}

// NewService wires the pipeline to its persistence collaborator.
func NewService(recorder Recorder) *Service {
	return &Service{recorder: recorder}
}

// Respond processes a single turn for u. Every step is deterministic string
// work; only recording the turn can fail, and then nothing is persisted.
func (s *Service) Respond(ctx context.Context, u *user.User, turn Turn) (Result, error) {
	if turn.Message == "" {
		return Result{}, ErrEmptyMessage
	}

	tag := language.Tag(turn.Language)
	if turn.Language == "" {
		tag = language.Detect(turn.Message)
	}

	label := sentiment.Detect(turn.Message)

	moodLabel := turn.MoodOverride
	if moodLabel == "" {
		moodLabel = sentiment.Mood(label, "")
	}

	reply := FormatReply(tag, turn.Message, label)

	// One timestamp for the whole turn: both chat rows and the mood entry's
	// calendar date derive from it.
	now := time.Now().UTC()

	result := Result{
		Reply:     reply,
		Language:  string(tag),
		Sentiment: string(label),
		Mood:      moodLabel,
		Timestamp: now,
	}

	if !u.HistoryEnabled {
		return result, nil
	}

	userMsg := &chat.Message{
		UserID:    u.ID,
		Sender:    chat.SenderUser,
		Language:  string(tag),
		Sentiment: string(label),
		Content:   turn.Message,
		CreatedAt: now,
	}
	aiMsg := &chat.Message{
		UserID:    u.ID,
		Sender:    chat.SenderAI,
		Language:  string(tag),
		Sentiment: string(label),
		Content:   reply,
		CreatedAt: now,
	}
	entry := &mood.Entry{
		UserID: u.ID,
		Mood:   moodLabel,
		Source: mood.SourceChat,
		Date:   now.Format("2006-01-02"),
	}

	if err := s.recorder.RecordTurn(ctx, userMsg, aiMsg, entry); err != nil {
		return Result{}, fmt.Errorf("record turn: %w", err)
	}
	return result, nil
}
