package mood

import "time"

// SourceChat marks entries derived from the conversation pipeline, as opposed
// to entries users log by hand.
const SourceChat = "chat"

// Entry is one point in a user's mood journal. Date is the calendar day the
// entry belongs to, stored as YYYY-MM-DD so range filters are plain string
// comparisons.
type Entry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"-" gorm:"index;size:36"`
	Mood      string    `json:"mood" gorm:"size:32;not null"`
	Source    string    `json:"source" gorm:"size:16;default:chat"`
	Date      string    `json:"date" gorm:"index;size:10"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName pins the table name independent of gorm's pluralization.
func (Entry) TableName() string {
	return "mood_entries"
}
