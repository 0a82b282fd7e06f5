package chat

import "time"

// Sender roles for persisted messages.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message persists one side of a conversation turn. The user message and the
// generated reply of a turn share the same language, sentiment and timestamp.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"-" gorm:"index;size:36"`
	Sender    string    `json:"sender" gorm:"size:8;not null"`
	Language  string    `json:"language" gorm:"size:8;default:en"`
	Sentiment string    `json:"sentiment" gorm:"size:16;default:neutral"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// TableName pins the table name independent of gorm's pluralization.
func (Message) TableName() string {
	return "chat_messages"
}
