package connections

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Relationship is a connection between two users. Once accepted it is
// symmetric for messaging purposes; requester/receiver only matters for who
// may accept or decline.
type Relationship struct {
	ID          string `gorm:"primaryKey;size:36"`
	RequesterID string `gorm:"size:36;not null;index:idx_relationship_pair,unique"`
	ReceiverID  string `gorm:"size:36;not null;index:idx_relationship_pair,unique"`
	Status      Status `gorm:"size:16;not null;default:pending"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
