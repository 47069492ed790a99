package chat

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"ripple/infrastructure"
	"ripple/internal/messages"
	"ripple/internal/realtime"
)

// MessageStore is the persistence surface the router drives. Satisfied by
// messages.Service.
type MessageStore interface {
	SendDirect(ctx context.Context, senderID, receiverID, content string) (*messages.DirectMessage, error)
	SaveChat(ctx context.Context, userID, from, content string) (*messages.ChatMessage, error)
}

// Announcer is the presence half of the connect/disconnect path. Satisfied
// by realtime.Presence.
type Announcer interface {
	AnnounceOnline(ctx context.Context, userID string) error
	AnnounceOffline(ctx context.Context, userID string) error
}

var supportReplies = []string{
	"Thanks for reaching out! A member of our team will get back to you shortly.",
	"We received your message and will respond as soon as we can.",
	"Got it — someone from support will follow up with you soon.",
}

// Router classifies inbound envelopes from one bound channel and drives
// persistence and delivery for each. One Router instance serves every
// connection; per-event state lives in the Session.
type Router struct {
	registry *realtime.Registry
	presence Announcer
	store    MessageStore

	replyDelay time.Duration
	log        *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewRouter(registry *realtime.Registry, presence Announcer, store MessageStore, replyDelay time.Duration, log *slog.Logger) *Router {
	return &Router{
		registry:   registry,
		presence:   presence,
		store:      store,
		replyDelay: replyDelay,
		log:        log,
		timers:     make(map[string]*time.Timer),
	}
}

// HandleEvent dispatches one decoded envelope for a session. authUserID is
// the identity resolved from the connection token; when present it overrides
// whatever the connect payload claims. Events on an unbound session other
// than connect are ignored.
func (r *Router) HandleEvent(ctx context.Context, sess *realtime.Session, authUserID string, ev realtime.Inbound) {
	switch e := ev.(type) {
	case realtime.ConnectEvent:
		r.handleConnect(ctx, sess, authUserID, e)
	case realtime.DirectMessageEvent:
		r.handleDirectMessage(ctx, sess, e)
	case realtime.TypingEvent:
		r.handleTyping(sess, e)
	case realtime.ChatEvent:
		r.handleChat(ctx, sess, e)
	}
}

func (r *Router) handleConnect(ctx context.Context, sess *realtime.Session, authUserID string, ev realtime.ConnectEvent) {
	userID := ev.UserID
	if authUserID != "" {
		userID = authUserID
	}
	if userID == "" {
		return
	}
	if !sess.Bind(userID) {
		// Already bound or closed; a second handshake is a no-op.
		return
	}

	r.registry.Register(userID, sess.Channel)
	if err := r.presence.AnnounceOnline(ctx, userID); err != nil {
		// Presence is best-effort: the channel stays registered and open.
		r.log.Error("online announcement failed", "user", userID, "error", err)
	}
	r.log.Info("channel bound", "user", userID, "channel", sess.Channel.ID())
}

func (r *Router) handleDirectMessage(ctx context.Context, sess *realtime.Session, ev realtime.DirectMessageEvent) {
	senderID, bound := sess.UserID()
	if !bound {
		return
	}

	m, err := r.store.SendDirect(ctx, senderID, ev.ReceiverID, ev.Content)
	if err != nil {
		if errors.Is(err, infrastructure.ErrNotConnected) {
			_ = sess.Channel.Send(realtime.ErrorEvent("you are not connected with this user"))
			return
		}
		// Abort this event's side effects: no push, no ack.
		r.log.Error("direct message persistence failed", "sender", senderID, "error", err)
		return
	}

	if ch, ok := r.registry.Lookup(ev.ReceiverID); ok {
		_ = ch.Send(realtime.DirectMessagePush(m))
	}
	_ = sess.Channel.Send(realtime.DirectMessageAck(m))
}

// handleTyping is a pure relay: nothing is persisted and an offline receiver
// means a silent drop either way.
func (r *Router) handleTyping(sess *realtime.Session, ev realtime.TypingEvent) {
	senderID, bound := sess.UserID()
	if !bound {
		return
	}
	if ch, ok := r.registry.Lookup(ev.ReceiverID); ok {
		_ = ch.Send(realtime.TypingPush(senderID, ev.IsTyping))
	}
}

func (r *Router) handleChat(ctx context.Context, sess *realtime.Session, ev realtime.ChatEvent) {
	userID, bound := sess.UserID()
	if !bound || ev.Content == "" {
		return
	}

	m, err := r.store.SaveChat(ctx, userID, messages.ChatFromSelf, ev.Content)
	if err != nil {
		r.log.Error("chat persistence failed", "user", userID, "error", err)
		return
	}
	_ = sess.Channel.Send(realtime.ChatPush(m))

	r.scheduleReply(sess, userID)
}

// scheduleReply arms the delayed support response for a channel. A newer
// chat message on the same channel reschedules; channel close cancels.
func (r *Router) scheduleReply(sess *realtime.Session, userID string) {
	channelID := sess.Channel.ID()

	r.mu.Lock()
	if t, ok := r.timers[channelID]; ok {
		t.Stop()
	}
	r.timers[channelID] = time.AfterFunc(r.replyDelay, func() {
		r.mu.Lock()
		delete(r.timers, channelID)
		r.mu.Unlock()
		r.fireReply(userID, channelID)
	})
	r.mu.Unlock()
}

func (r *Router) fireReply(userID, channelID string) {
	// Detached from the originating event; the connection context is gone.
	ctx := context.Background()

	reply, err := r.store.SaveChat(ctx, userID, messages.ChatFromSupport, supportReplies[rand.Intn(len(supportReplies))])
	if err != nil {
		r.log.Error("support reply persistence failed", "user", userID, "error", err)
		return
	}

	// Push only if the same channel is still the user's live one.
	if ch, ok := r.registry.Lookup(userID); ok && ch.ID() == channelID {
		_ = ch.Send(realtime.ChatPush(reply))
	}
}

// HandleClose runs the disconnect path exactly once per session: cancel any
// pending support reply, drop the registry entry if this channel still owns
// it, and announce offline only when the entry was actually removed.
func (r *Router) HandleClose(ctx context.Context, sess *realtime.Session) {
	userID, bound := sess.UserID()
	if !sess.CloseOnce() {
		return
	}

	channelID := sess.Channel.ID()
	r.mu.Lock()
	if t, ok := r.timers[channelID]; ok {
		t.Stop()
		delete(r.timers, channelID)
	}
	r.mu.Unlock()

	if !bound {
		return
	}
	if r.registry.Unregister(userID, sess.Channel) {
		if err := r.presence.AnnounceOffline(ctx, userID); err != nil {
			r.log.Error("offline announcement failed", "user", userID, "error", err)
		}
	}
	r.log.Info("channel closed", "user", userID, "channel", channelID)
}
