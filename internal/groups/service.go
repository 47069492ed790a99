package groups

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

func (s *Service) Create(ctx context.Context, ownerID, name string) (*Group, error) {
	if name == "" {
		return nil, infrastructure.ErrInvalidInput
	}
	g := &Group{
		ID:      uuid.New().String(),
		Name:    name,
		OwnerID: ownerID,
	}
	owner := &GroupMember{
		ID:      uuid.New().String(),
		GroupID: g.ID,
		UserID:  ownerID,
		Role:    RoleAdmin,
		Status:  MemberAccepted,
	}
	if err := s.repo.CreateGroup(ctx, g, owner); err != nil {
		return nil, err
	}
	return g, nil
}

// Invite adds a pending member row and notifies the invitee. Admin only.
func (s *Service) Invite(ctx context.Context, inviterID, groupID, inviteeID string) (*GroupMember, error) {
	inviter, err := s.repo.GetMember(ctx, groupID, inviterID)
	if err != nil {
		if errors.Is(err, infrastructure.ErrNotFound) {
			return nil, infrastructure.ErrNotMember
		}
		return nil, err
	}
	if inviter.Status != MemberAccepted || inviter.Role != RoleAdmin {
		return nil, infrastructure.ErrUnauthorized
	}

	if existing, err := s.repo.GetMember(ctx, groupID, inviteeID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: user already invited", infrastructure.ErrInvalidInput)
	} else if err != nil && !errors.Is(err, infrastructure.ErrNotFound) {
		return nil, err
	}

	group, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	m := &GroupMember{
		ID:      uuid.New().String(),
		GroupID: groupID,
		UserID:  inviteeID,
		Role:    RoleMember,
		Status:  MemberPending,
	}
	if err := s.repo.AddMember(ctx, m); err != nil {
		return nil, err
	}

	if _, err := s.dispatcher.Notify(ctx, inviteeID, notifications.TypeGroupInvitation, inviterID, m.ID, "invited you to "+group.Name); err != nil {
		s.log.Error("failed to dispatch group invitation", "membership", m.ID, "error", err)
	}
	return m, nil
}

// Respond resolves an invitation. Only the invitee may respond, and the
// invitation notification is retracted either way.
func (s *Service) Respond(ctx context.Context, userID, membershipID string, accept bool) (*GroupMember, error) {
	m, err := s.repo.GetMemberByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, infrastructure.ErrUnauthorized
	}
	if m.Status != MemberPending {
		return nil, fmt.Errorf("%w: invitation already resolved", infrastructure.ErrInvalidInput)
	}

	status := MemberDeclined
	if accept {
		status = MemberAccepted
	}
	if err := s.repo.UpdateMemberStatus(ctx, m.ID, status); err != nil {
		return nil, err
	}
	m.Status = status

	if err := s.dispatcher.DeleteByRelated(ctx, m.ID, notifications.TypeGroupInvitation); err != nil {
		s.log.Error("failed to retract invitation notification", "membership", m.ID, "error", err)
	}
	return m, nil
}

func (s *Service) IsAcceptedMember(ctx context.Context, groupID, userID string) (bool, error) {
	m, err := s.repo.GetMember(ctx, groupID, userID)
	if errors.Is(err, infrastructure.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return m.Status == MemberAccepted, nil
}

func (s *Service) AcceptedMembers(ctx context.Context, groupID string) ([]*GroupMember, error) {
	return s.repo.AcceptedMembers(ctx, groupID)
}
