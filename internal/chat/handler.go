package chat

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ripple/infrastructure"
	"ripple/internal/realtime"
)

const (
	readLimit    = int64(16 << 10)
	readDeadline = 90 * time.Second
)

// TokenParser resolves a signed token to a verified user id. Satisfied by
// pkg/jwt.JWT.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

type Handler struct {
	router    *Router
	tokens    TokenParser
	queueSize int
	log       *slog.Logger
	upgrader  websocket.Upgrader
}

func NewHandler(router *Router, tokens TokenParser, queueSize int, log *slog.Logger) *Handler {
	return &Handler{
		router:    router,
		tokens:    tokens,
		queueSize: queueSize,
		log:       log,
		upgrader: websocket.Upgrader{
			// TODO: restrict Origin once the web client's domain is settled.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the connection and runs its read loop. Each
// connection gets its own goroutine (this one); the channel's writer
// goroutine is started by NewWSChannel.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	authUserID := h.resolveToken(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}

	ch := realtime.NewWSChannel(conn, h.queueSize, h.log)
	sess := realtime.NewSession(ch)

	defer func() {
		h.router.HandleClose(c.Request.Context(), sess)
		ch.Close()
	}()

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.log.Debug("websocket read ended", "channel", ch.ID(), "error", err)
			return
		}

		ev, err := realtime.DecodeInbound(data)
		if err != nil {
			// Malformed events are dropped; the connection stays open.
			if errors.Is(err, infrastructure.ErrMalformedEvent) {
				h.log.Debug("dropping malformed event", "channel", ch.ID(), "error", err)
				continue
			}
			continue
		}

		h.router.HandleEvent(c.Request.Context(), sess, authUserID, ev)
	}
}

// HandleOnlineUsers lists the ids of users holding a live channel right now.
func (h *Handler) HandleOnlineUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"userIds": h.router.registry.OnlineUserIDs()})
}

// resolveToken is the CurrentUser seam: a verified identity from the session
// token, or empty when the client will identify itself in the handshake.
func (h *Handler) resolveToken(c *gin.Context) string {
	token := c.Query("token")
	if token == "" {
		token = c.GetHeader("Authorization")
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}
	}
	if token == "" {
		return ""
	}
	userID, err := h.tokens.ParseToken(token)
	if err != nil {
		h.log.Debug("websocket token rejected", "error", err)
		return ""
	}
	return userID
}
