package realtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ripple/infrastructure"
)

const (
	writeTimeout     = 10 * time.Second
	defaultQueueSize = 32
)

// Channel is one live client connection usable for push delivery. Send must
// never block the caller: implementations queue with a bound and drop on
// backpressure so a slow peer cannot stall event handling for anyone else.
type Channel interface {
	ID() string
	Send(v interface{}) error
	Close()
}

// WSChannel wraps a websocket connection with a single writer goroutine.
// All writes funnel through the outbound queue; gorilla connections do not
// allow concurrent writers.
type WSChannel struct {
	id   string
	conn *websocket.Conn

	out  chan interface{}
	done chan struct{}

	closeOnce sync.Once
	log       *slog.Logger
}

func NewWSChannel(conn *websocket.Conn, queueSize int, log *slog.Logger) *WSChannel {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	ch := &WSChannel{
		id:   uuid.New().String(),
		conn: conn,
		out:  make(chan interface{}, queueSize),
		done: make(chan struct{}),
		log:  log,
	}
	go ch.writeLoop()
	return ch
}

func (c *WSChannel) ID() string { return c.id }

// Send enqueues a payload for delivery. A full queue drops the payload: the
// persisted copy is authoritative, live delivery is a latency optimization.
func (c *WSChannel) Send(v interface{}) error {
	select {
	case <-c.done:
		return infrastructure.ErrChannelClosed
	default:
	}

	select {
	case c.out <- v:
		return nil
	default:
		c.log.Debug("dropping payload on backpressure", "channel", c.id)
		return nil
	}
}

func (c *WSChannel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *WSChannel) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case v := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(v); err != nil {
				c.log.Debug("websocket write failed", "channel", c.id, "error", err)
				c.Close()
				return
			}
		}
	}
}
