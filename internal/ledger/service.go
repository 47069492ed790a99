package ledger

import (
	"context"
	"fmt"

	"ripple/infrastructure"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// React applies the toggle rule for one user's reaction to one message:
// no existing reaction creates, the same emoji removes, a different emoji
// replaces atomically.
func (s *Service) React(ctx context.Context, messageID, messageType, userID, emoji string) (Outcome, error) {
	if !validMessageType(messageType) {
		return 0, fmt.Errorf("%w: message type %q", infrastructure.ErrInvalidInput, messageType)
	}
	if !allowedEmoji(emoji) {
		return 0, fmt.Errorf("%w: emoji %q", infrastructure.ErrInvalidInput, emoji)
	}

	existing, err := s.repo.GetReaction(ctx, messageID, messageType, userID)
	if err != nil {
		return 0, err
	}

	switch {
	case existing == nil:
		err = s.repo.InsertReaction(ctx, &Reaction{
			MessageID:   messageID,
			MessageType: messageType,
			UserID:      userID,
			Emoji:       emoji,
		})
		if err != nil {
			return 0, err
		}
		return Created, nil

	case existing.Emoji == emoji:
		if err := s.repo.DeleteReaction(ctx, messageID, messageType, userID); err != nil {
			return 0, err
		}
		return Removed, nil

	default:
		err = s.repo.ReplaceReaction(ctx, &Reaction{
			MessageID:   messageID,
			MessageType: messageType,
			UserID:      userID,
			Emoji:       emoji,
		})
		if err != nil {
			return 0, err
		}
		return Replaced, nil
	}
}

// MarkRead records a receipt for each id that does not already have one.
// Partial application on error is fine; retried ids are idempotent.
func (s *Service) MarkRead(ctx context.Context, userID string, messageIDs []string, messageType string) error {
	if !validMessageType(messageType) {
		return fmt.Errorf("%w: message type %q", infrastructure.ErrInvalidInput, messageType)
	}
	for _, id := range messageIDs {
		err := s.repo.InsertReceipt(ctx, &ReadReceipt{
			MessageID:   id,
			MessageType: messageType,
			UserID:      userID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) Counts(ctx context.Context, messageID, messageType string) ([]*ReactionCount, error) {
	return s.repo.Counts(ctx, messageID, messageType)
}

func (s *Service) Reactions(ctx context.Context, messageID, messageType string) ([]*Reaction, error) {
	return s.repo.Reactions(ctx, messageID, messageType)
}

func (s *Service) Receipts(ctx context.Context, messageID, messageType string) ([]*ReadReceipt, error) {
	return s.repo.Receipts(ctx, messageID, messageType)
}

// PurgeMessage removes every ledger row referencing a deleted message.
func (s *Service) PurgeMessage(ctx context.Context, messageID, messageType string) error {
	return s.repo.PurgeMessage(ctx, messageID, messageType)
}

func validMessageType(t string) bool {
	return t == "direct" || t == "group"
}

func allowedEmoji(emoji string) bool {
	for _, e := range AllowedEmoji {
		if e == emoji {
			return true
		}
	}
	return false
}
