package ledger

import "time"

// Outcome tells the caller what a React call actually did, so the consuming
// layer can re-fetch counts or animate accordingly.
type Outcome int

const (
	Created Outcome = iota
	Removed
	Replaced
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Removed:
		return "removed"
	case Replaced:
		return "replaced"
	}
	return "unknown"
}

// AllowedEmoji is the fixed reaction set. Anything else is rejected.
var AllowedEmoji = []string{"👍", "❤️", "😂", "😮", "😢"}

type Reaction struct {
	MessageID   string    `json:"messageId"`
	MessageType string    `json:"messageType"`
	UserID      string    `json:"userId"`
	Emoji       string    `json:"emoji"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReadReceipt rows are append-only; the ledger never updates or deletes one
// except when the message itself is deleted.
type ReadReceipt struct {
	MessageID   string    `json:"messageId"`
	MessageType string    `json:"messageType"`
	UserID      string    `json:"userId"`
	ReadAt      time.Time `json:"readAt"`
}

// ReactionCount is the per-emoji aggregate for one message.
type ReactionCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}
