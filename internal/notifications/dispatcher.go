package notifications

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"ripple/internal/realtime"
)

// Dispatcher is the single entry point collaborators use to notify a user.
// The notification row is persisted first, unconditionally; the live push is
// opportunistic and only happens when the target holds a live channel.
type Dispatcher struct {
	repo     Repository
	registry *realtime.Registry
	log      *slog.Logger
}

func NewDispatcher(repo Repository, registry *realtime.Registry, log *slog.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, registry: registry, log: log}
}

func (d *Dispatcher) Notify(ctx context.Context, targetUserID, notificationType, fromUserID, relatedID, message string) (*Notification, error) {
	n := &Notification{
		ID:         uuid.New().String(),
		UserID:     targetUserID,
		Type:       notificationType,
		FromUserID: fromUserID,
		RelatedID:  relatedID,
		Message:    message,
	}
	if err := d.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if ch, ok := d.registry.Lookup(targetUserID); ok {
		if err := ch.Send(realtime.NotificationPush(n)); err != nil {
			d.log.Debug("notification push skipped", "user", targetUserID, "error", err)
		}
	}
	return n, nil
}

// DeleteByRelated retracts notifications once their originating record is
// resolved, so a stale pending-request row never contradicts the outcome.
func (d *Dispatcher) DeleteByRelated(ctx context.Context, relatedID, notificationType string) error {
	return d.repo.DeleteByRelated(ctx, relatedID, notificationType)
}

func (d *Dispatcher) List(ctx context.Context, userID string) ([]*Notification, error) {
	return d.repo.ListForUser(ctx, userID)
}

func (d *Dispatcher) MarkRead(ctx context.Context, userID, id string) error {
	return d.repo.MarkRead(ctx, userID, id)
}

func (d *Dispatcher) MarkAllRead(ctx context.Context, userID string) error {
	return d.repo.MarkAllRead(ctx, userID)
}
