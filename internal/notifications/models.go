package notifications

import "time"

const (
	TypeConnectionRequest  = "connection_request"
	TypeConnectionAccepted = "connection_accepted"
	TypeGroupInvitation    = "group_invitation"
)

type Notification struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	UserID     string `gorm:"size:36;not null;index" json:"userId"`
	Type       string `gorm:"size:32;not null;index" json:"type"`
	FromUserID string `gorm:"size:36" json:"fromUser,omitempty"`
	// RelatedID points at the row that caused this notification: the
	// relationship for connection requests, the membership for invitations.
	RelatedID string    `gorm:"size:36;index" json:"relatedId,omitempty"`
	Message   string    `gorm:"size:255" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
