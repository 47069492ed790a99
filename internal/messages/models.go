package messages

import "time"

const (
	TypeDirect = "direct"
	TypeGroup  = "group"
)

// DirectMessage is immutable after creation except for IsRead, which only
// moves false -> true, and hard deletion by the sender.
type DirectMessage struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	SenderID   string    `gorm:"size:36;not null;index" json:"senderId"`
	ReceiverID string    `gorm:"size:36;not null;index" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRead     bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt  time.Time `json:"timestamp"`
}

type GroupMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	GroupID   string    `gorm:"size:36;not null;index" json:"groupId"`
	SenderID  string    `gorm:"size:36;not null;index" json:"senderId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

const (
	ChatFromSelf    = "self"
	ChatFromSupport = "support"
)

// ChatMessage is the anonymous support-chat transcript. Its only participant
// is the user themselves plus the canned support responder.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"userId"`
	From      string    `gorm:"size:16;not null" json:"from"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}
