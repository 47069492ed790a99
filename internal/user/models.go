package user

import "time"

// User mirrors the platform's user table. The realtime core only reads the
// identity and toggles the presence flag; account lifecycle lives elsewhere.
type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	Username  string `gorm:"uniqueIndex;not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	IsOnline  bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
