package connections

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ripple/infrastructure"
	"ripple/internal/notifications"
)

type Service struct {
	repo       Repository
	dispatcher *notifications.Dispatcher
	log        *slog.Logger
}

func NewService(repo Repository, dispatcher *notifications.Dispatcher, log *slog.Logger) *Service {
	return &Service{repo: repo, dispatcher: dispatcher, log: log}
}

// Request creates a pending relationship and notifies the receiver. A pair
// that already has a relationship in any state keeps it.
func (s *Service) Request(ctx context.Context, requesterID, receiverID string) (*Relationship, error) {
	if requesterID == receiverID {
		return nil, infrastructure.ErrInvalidInput
	}

	existing, err := s.repo.GetBetween(ctx, requesterID, receiverID)
	if err != nil && !errors.Is(err, infrastructure.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: relationship already exists", infrastructure.ErrInvalidInput)
	}

	rel := &Relationship{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, rel); err != nil {
		return nil, err
	}

	if _, err := s.dispatcher.Notify(ctx, receiverID, notifications.TypeConnectionRequest, requesterID, rel.ID, "sent you a connection request"); err != nil {
		// The relationship stands even if the notification row fails.
		s.log.Error("failed to dispatch connection request notification", "relationship", rel.ID, "error", err)
	}
	return rel, nil
}

// Accept resolves a pending request. Only the receiver may accept; the
// pending-request notification is retracted so it cannot contradict the
// resolved relationship, and the requester is told their request went through.
func (s *Service) Accept(ctx context.Context, userID, relationshipID string) (*Relationship, error) {
	rel, err := s.resolvable(ctx, userID, relationshipID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, rel.ID, StatusAccepted); err != nil {
		return nil, err
	}
	rel.Status = StatusAccepted

	if err := s.dispatcher.DeleteByRelated(ctx, rel.ID, notifications.TypeConnectionRequest); err != nil {
		s.log.Error("failed to retract request notification", "relationship", rel.ID, "error", err)
	}
	if _, err := s.dispatcher.Notify(ctx, rel.RequesterID, notifications.TypeConnectionAccepted, userID, rel.ID, "accepted your connection request"); err != nil {
		s.log.Error("failed to dispatch acceptance notification", "relationship", rel.ID, "error", err)
	}
	return rel, nil
}

func (s *Service) Decline(ctx context.Context, userID, relationshipID string) error {
	rel, err := s.resolvable(ctx, userID, relationshipID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, rel.ID, StatusDeclined); err != nil {
		return err
	}
	if err := s.dispatcher.DeleteByRelated(ctx, rel.ID, notifications.TypeConnectionRequest); err != nil {
		s.log.Error("failed to retract request notification", "relationship", rel.ID, "error", err)
	}
	return nil
}

func (s *Service) ListAccepted(ctx context.Context, userID string) ([]*Relationship, error) {
	return s.repo.ListForUser(ctx, userID, StatusAccepted)
}

func (s *Service) ListPending(ctx context.Context, userID string) ([]*Relationship, error) {
	return s.repo.ListForUser(ctx, userID, StatusPending)
}

func (s *Service) resolvable(ctx context.Context, userID, relationshipID string) (*Relationship, error) {
	rel, err := s.repo.GetByID(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.ReceiverID != userID {
		return nil, infrastructure.ErrUnauthorized
	}
	if rel.Status != StatusPending {
		return nil, fmt.Errorf("%w: relationship already resolved", infrastructure.ErrInvalidInput)
	}
	return rel, nil
}
