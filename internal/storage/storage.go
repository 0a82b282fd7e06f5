package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mindloom/companion-ai/backend/internal/model/chat"
	"github.com/mindloom/companion-ai/backend/internal/model/mood"
	"github.com/mindloom/companion-ai/backend/internal/model/user"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = errors.New("record not found")
)

// Store wraps the sqlite database behind the persistence operations the
// services need.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&user.User{}, &chat.Message{}, &mood.Entry{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// CreateUser inserts a new account. The email must be unused.
func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&user.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UserByEmail fetches an account by email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

// UserByID fetches an account by identifier.
func (s *Store) UserByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

// UpdateUser persists changed account settings.
func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// RecordTurn persists a conversation turn: the user message, the generated
// reply and the derived mood entry commit together or not at all.
func (s *Store) RecordTurn(ctx context.Context, userMsg, aiMsg *chat.Message, entry *mood.Entry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userMsg).Error; err != nil {
			return fmt.Errorf("save user message: %w", err)
		}
		if err := tx.Create(aiMsg).Error; err != nil {
			return fmt.Errorf("save ai message: %w", err)
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("save mood entry: %w", err)
		}
		return nil
	})
}

// RecentMessages returns the user's most recent messages, oldest first. Both
// rows of a turn share one timestamp, so the row id breaks the tie and keeps
// the user message ahead of the reply.
func (s *Store) RecentMessages(ctx context.Context, userID string, limit int) ([]chat.Message, error) {
	var messages []chat.Message
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MoodEntries lists a user's mood journal in ascending date order. Start and
// end bound the range inclusively when non-empty (YYYY-MM-DD).
func (s *Store) MoodEntries(ctx context.Context, userID, start, end string) ([]mood.Entry, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if start != "" {
		query = query.Where("date >= ?", start)
	}
	if end != "" {
		query = query.Where("date <= ?", end)
	}

	var entries []mood.Entry
	if err := query.Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load mood entries: %w", err)
	}
	return entries, nil
}

// CreateMoodEntry inserts a manually logged mood entry.
func (s *Store) CreateMoodEntry(ctx context.Context, entry *mood.Entry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create mood entry: %w", err)
	}
	return nil
}

// DeleteMoodEntry removes an entry owned by userID. Entries of other users
// are invisible here and report ErrNotFound.
func (s *Store) DeleteMoodEntry(ctx context.Context, userID string, id uint) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&mood.Entry{})
	if result.Error != nil {
		return fmt.Errorf("delete mood entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
