package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mindloom/companion-ai/backend/internal/model/chat"
	"github.com/mindloom/companion-ai/backend/internal/model/mood"
	"github.com/mindloom/companion-ai/backend/internal/model/user"
	"github.com/mindloom/companion-ai/backend/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return store
}

func seedUser(t *testing.T, store *storage.Store) *user.User {
	t.Helper()
	u := &user.User{
		ID:             uuid.NewString(),
		Email:          uuid.NewString() + "@example.com",
		PasswordHash:   "hash",
		DisplayName:    "Test User",
		HistoryEnabled: true,
	}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func turnMessages(u *user.User, content, reply string, at time.Time) (*chat.Message, *chat.Message, *mood.Entry) {
	userMsg := &chat.Message{
		UserID: u.ID, Sender: chat.SenderUser,
		Language: "en", Sentiment: "positive",
		Content: content, CreatedAt: at,
	}
	aiMsg := &chat.Message{
		UserID: u.ID, Sender: chat.SenderAI,
		Language: "en", Sentiment: "positive",
		Content: reply, CreatedAt: at,
	}
	entry := &mood.Entry{
		UserID: u.ID, Mood: "uplifted",
		Source: mood.SourceChat, Date: at.Format("2006-01-02"),
	}
	return userMsg, aiMsg, entry
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	u := seedUser(t, store)
	dup := &user.User{ID: uuid.NewString(), Email: u.Email, PasswordHash: "hash"}
	require.ErrorIs(t, store.CreateUser(ctx, dup), storage.ErrEmailTaken)
}

func TestUserLookupAndUpdate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	u := seedUser(t, store)

	byEmail, err := store.UserByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byEmail.HistoryEnabled = false
	byEmail.DisplayName = "Renamed"
	require.NoError(t, store.UpdateUser(ctx, byEmail))

	byID, err := store.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, byID.HistoryEnabled)
	require.Equal(t, "Renamed", byID.DisplayName)

	_, err = store.UserByID(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRecordTurnPersistsAllThreeRecords(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	u := seedUser(t, store)
	now := time.Now().UTC()
	userMsg, aiMsg, entry := turnMessages(u, "feeling great", "glad to hear it", now)
	require.NoError(t, store.RecordTurn(ctx, userMsg, aiMsg, entry))

	messages, err := store.RecentMessages(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, chat.SenderUser, messages[0].Sender)
	require.Equal(t, chat.SenderAI, messages[1].Sender)

	entries, err := store.MoodEntries(ctx, u.ID, "", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "uplifted", entries[0].Mood)
	require.Equal(t, mood.SourceChat, entries[0].Source)
}

func TestRecentMessagesReturnsLatestOldestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	u := seedUser(t, store)
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		userMsg, aiMsg, entry := turnMessages(u, "turn", "reply", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.RecordTurn(ctx, userMsg, aiMsg, entry))
	}

	// Limit covers only the newest turn; its user message still comes first.
	messages, err := store.RecentMessages(ctx, u.ID, 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, chat.SenderUser, messages[0].Sender)
	require.Equal(t, chat.SenderAI, messages[1].Sender)
	require.True(t, messages[0].CreatedAt.Equal(base.Add(2*time.Minute)))
}

func TestRecentMessagesScopedToUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	u := seedUser(t, store)
	other := seedUser(t, store)

	userMsg, aiMsg, entry := turnMessages(u, "mine", "reply", time.Now().UTC())
	require.NoError(t, store.RecordTurn(ctx, userMsg, aiMsg, entry))

	messages, err := store.RecentMessages(ctx, other.ID, 10)
	require.NoError(t, err)
	require.Empty(t, messages)
}

func TestMoodEntriesRangeFilterIsInclusive(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	u := seedUser(t, store)
	for _, date := range []string{"2026-08-01", "2026-08-02", "2026-08-03"} {
		require.NoError(t, store.CreateMoodEntry(ctx, &mood.Entry{
			UserID: u.ID, Mood: "calm", Source: "manual", Date: date,
		}))
	}

	entries, err := store.MoodEntries(ctx, u.ID, "2026-08-02", "2026-08-03")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "2026-08-02", entries[0].Date)
	require.Equal(t, "2026-08-03", entries[1].Date)

	entries, err = store.MoodEntries(ctx, u.ID, "", "2026-08-01")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "2026-08-01", entries[0].Date)
}

func TestDeleteMoodEntryScopedToOwner(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, store)
	intruder := seedUser(t, store)

	entry := &mood.Entry{UserID: owner.ID, Mood: "calm", Source: "manual", Date: "2026-08-28"}
	require.NoError(t, store.CreateMoodEntry(ctx, entry))

	require.ErrorIs(t, store.DeleteMoodEntry(ctx, intruder.ID, entry.ID), storage.ErrNotFound)

	require.NoError(t, store.DeleteMoodEntry(ctx, owner.ID, entry.ID))
	entries, err := store.MoodEntries(ctx, owner.ID, "", "")
	require.NoError(t, err)
	require.Empty(t, entries)

	require.ErrorIs(t, store.DeleteMoodEntry(ctx, owner.ID, entry.ID), storage.ErrNotFound)
}
