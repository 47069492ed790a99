package messages

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"ripple/infrastructure"
	"ripple/internal/groups"
	"ripple/internal/realtime"
)

// Gate is the relationship check consulted before any direct message is
// persisted. Satisfied by connections.Gate.
type Gate interface {
	CanMessage(ctx context.Context, a, b string) (bool, error)
}

// Membership answers group membership questions. Satisfied by groups.Service.
type Membership interface {
	IsAcceptedMember(ctx context.Context, groupID, userID string) (bool, error)
	AcceptedMembers(ctx context.Context, groupID string) ([]*groups.GroupMember, error)
}

// LedgerPurger removes reactions and receipts referencing a deleted message.
type LedgerPurger interface {
	PurgeMessage(ctx context.Context, messageID, messageType string) error
}

type Service struct {
	repo       Repository
	gate       Gate
	membership Membership
	ledger     LedgerPurger
	registry   *realtime.Registry
	log        *slog.Logger
}

func NewService(repo Repository, gate Gate, membership Membership, ledger LedgerPurger, registry *realtime.Registry, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		gate:       gate,
		membership: membership,
		ledger:     ledger,
		registry:   registry,
		log:        log,
	}
}

// SendDirect persists a direct message after the gate allows it. It does not
// push: the websocket router owns live delivery so the ack and push stay on
// the sender's event path.
func (s *Service) SendDirect(ctx context.Context, senderID, receiverID, content string) (*DirectMessage, error) {
	if receiverID == "" || content == "" {
		return nil, infrastructure.ErrInvalidInput
	}
	allowed, err := s.gate.CanMessage(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, infrastructure.ErrNotConnected
	}

	m := &DirectMessage{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.repo.CreateDirect(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// SendGroup persists a group message and fans it out to every accepted
// member other than the sender that currently holds a live channel.
func (s *Service) SendGroup(ctx context.Context, senderID, groupID, content string) (*GroupMessage, error) {
	if groupID == "" || content == "" {
		return nil, infrastructure.ErrInvalidInput
	}
	ok, err := s.membership.IsAcceptedMember(ctx, groupID, senderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, infrastructure.ErrNotMember
	}

	m := &GroupMessage{
		ID:       uuid.New().String(),
		GroupID:  groupID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.repo.CreateGroup(ctx, m); err != nil {
		return nil, err
	}

	members, err := s.membership.AcceptedMembers(ctx, groupID)
	if err != nil {
		// The message is durable; fan-out is best-effort.
		s.log.Error("group fan-out skipped", "group", groupID, "error", err)
		return m, nil
	}
	env := realtime.GroupMessagePush(m)
	for _, member := range members {
		if member.UserID == senderID {
			continue
		}
		if ch, ok := s.registry.Lookup(member.UserID); ok {
			_ = ch.Send(env)
		}
	}
	return m, nil
}

// DeleteDirect hard-deletes a message the caller sent, cascading the ledger
// rows that reference it. Deleting an unknown id reports not-found.
func (s *Service) DeleteDirect(ctx context.Context, userID, messageID string) error {
	m, err := s.repo.GetDirect(ctx, messageID)
	if err != nil {
		return err
	}
	if m.SenderID != userID {
		return infrastructure.ErrUnauthorized
	}
	if err := s.repo.DeleteDirect(ctx, messageID); err != nil {
		return err
	}
	if err := s.ledger.PurgeMessage(ctx, messageID, TypeDirect); err != nil {
		s.log.Error("failed to purge ledger rows", "message", messageID, "error", err)
	}
	return nil
}

// MarkDirectRead flips the coarse read flag. Only the receiver may mark, and
// the flag never goes back to unread.
func (s *Service) MarkDirectRead(ctx context.Context, userID, messageID string) error {
	m, err := s.repo.GetDirect(ctx, messageID)
	if err != nil {
		return err
	}
	if m.ReceiverID != userID {
		return infrastructure.ErrUnauthorized
	}
	if m.IsRead {
		return nil
	}
	return s.repo.MarkDirectRead(ctx, messageID)
}

func (s *Service) Conversation(ctx context.Context, userID, otherID string, limit int) ([]*DirectMessage, error) {
	return s.repo.Conversation(ctx, userID, otherID, limit)
}

func (s *Service) GroupHistory(ctx context.Context, userID, groupID string, limit int) ([]*GroupMessage, error) {
	ok, err := s.membership.IsAcceptedMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, infrastructure.ErrNotMember
	}
	return s.repo.GroupHistory(ctx, groupID, limit)
}

// SaveChat persists one support-chat line for the given user.
func (s *Service) SaveChat(ctx context.Context, userID, from, content string) (*ChatMessage, error) {
	m := &ChatMessage{
		ID:      uuid.New().String(),
		UserID:  userID,
		From:    from,
		Content: content,
	}
	if err := s.repo.CreateChat(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ChatHistory(ctx context.Context, userID string, limit int) ([]*ChatMessage, error) {
	return s.repo.ChatHistory(ctx, userID, limit)
}
