package user

import "time"

// User is a registered account. The password hash never leaves the server.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash   string    `json:"-" gorm:"not null"`
	DisplayName    string    `json:"displayName" gorm:"default:'Companion User'"`
	HistoryEnabled bool      `json:"historyEnabled" gorm:"default:true"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName pins the table name independent of gorm's pluralization.
func (User) TableName() string {
	return "users"
}
