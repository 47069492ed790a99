package realtime

import (
	"context"
	"log/slog"
)

// StatusStore persists the durable per-user online flag.
type StatusStore interface {
	SetOnline(ctx context.Context, userID string, online bool) error
}

// PresenceCache is an optional fast-read mirror of the online flag. Cache
// failures never affect the presence protocol.
type PresenceCache interface {
	SetPresence(ctx context.Context, userID string, online bool) error
}

// Presence turns registry transitions into persisted flags and broadcasts.
// The flag is written before the broadcast goes out, so a client reacting to
// the broadcast always observes the updated flag.
type Presence struct {
	registry *Registry
	store    StatusStore
	cache    PresenceCache
	log      *slog.Logger
}

func NewPresence(registry *Registry, store StatusStore, cache PresenceCache, log *slog.Logger) *Presence {
	return &Presence{registry: registry, store: store, cache: cache, log: log}
}

// AnnounceOnline persists is_online=true and broadcasts user_online. A
// persistence failure aborts the broadcast: a presence change that did not
// durably happen is never announced. The channel stays open either way.
func (p *Presence) AnnounceOnline(ctx context.Context, userID string) error {
	if err := p.store.SetOnline(ctx, userID, true); err != nil {
		p.log.Error("failed to persist online flag", "user", userID, "error", err)
		return err
	}
	p.mirror(ctx, userID, true)
	p.broadcast(UserOnline(userID))
	return nil
}

func (p *Presence) AnnounceOffline(ctx context.Context, userID string) error {
	if err := p.store.SetOnline(ctx, userID, false); err != nil {
		p.log.Error("failed to persist offline flag", "user", userID, "error", err)
		return err
	}
	p.mirror(ctx, userID, false)
	p.broadcast(UserOffline(userID))
	return nil
}

func (p *Presence) mirror(ctx context.Context, userID string, online bool) {
	if p.cache == nil {
		return
	}
	if err := p.cache.SetPresence(ctx, userID, online); err != nil {
		p.log.Debug("presence cache write failed", "user", userID, "error", err)
	}
}

func (p *Presence) broadcast(env Envelope) {
	for _, ch := range p.registry.AllChannels() {
		_ = ch.Send(env)
	}
}
