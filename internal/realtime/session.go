package realtime

import (
	"sync"
	"time"
)

type SessionState int

const (
	SessionUnbound SessionState = iota
	SessionBound
	SessionClosed
)

// Session tracks the handshake state of one channel. A channel may only emit
// domain events after a connect handshake has bound it to a user; Closed is
// terminal and is entered exactly once.
type Session struct {
	Channel Channel

	mu      sync.Mutex
	state   SessionState
	userID  string
	boundAt time.Time
}

func NewSession(ch Channel) *Session {
	return &Session{Channel: ch, state: SessionUnbound}
}

// Bind transitions Unbound -> Bound. Rebinding an already-bound or closed
// session is rejected.
func (s *Session) Bind(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionUnbound {
		return false
	}
	s.state = SessionBound
	s.userID = userID
	s.boundAt = time.Now()
	return true
}

// CloseOnce transitions to Closed and reports whether this call performed
// the transition, so disconnect side effects run exactly once.
func (s *Session) CloseOnce() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionClosed {
		return false
	}
	s.state = SessionClosed
	return true
}

func (s *Session) UserID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.state == SessionBound
}

func (s *Session) BoundAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundAt
}
