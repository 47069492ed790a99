package chat_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple/internal/chat"
	"ripple/internal/realtime"
)

type staticTokens struct {
	userID string
}

func (s staticTokens) ParseToken(token string) (string, error) {
	return s.userID, nil
}

type wsFixture struct {
	registry  *realtime.Registry
	store     *fakeStore
	announcer *fakeAnnouncer
	server    *httptest.Server
}

func newWSFixture(t *testing.T, tokenUserID string) *wsFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := realtime.NewRegistry()
	store := &fakeStore{}
	announcer := &fakeAnnouncer{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chat.NewRouter(registry, announcer, store, time.Hour, log)
	handler := chat.NewHandler(router, staticTokens{userID: tokenUserID}, 8, log)

	engine := gin.New()
	engine.GET("/ws", handler.HandleWebSocket)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &wsFixture{registry: registry, store: store, announcer: announcer, server: server}
}

func (f *wsFixture) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWebSocketConnectHandshake(t *testing.T) {
	f := newWSFixture(t, "")
	conn := f.dial(t, "")

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "connect", "userId": "alice"}))

	require.Eventually(t, func() bool {
		_, ok := f.registry.Lookup("alice")
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestWebSocketTokenIdentityWins(t *testing.T) {
	f := newWSFixture(t, "alice")
	conn := f.dial(t, "?token=signed-session-token")

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "connect", "userId": "mallory"}))

	require.Eventually(t, func() bool {
		_, ok := f.registry.Lookup("alice")
		return ok
	}, time.Second, 5*time.Millisecond)
	_, ok := f.registry.Lookup("mallory")
	assert.False(t, ok)
}

func TestWebSocketMalformedEventKeepsConnectionOpen(t *testing.T) {
	f := newWSFixture(t, "")
	conn := f.dial(t, "")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "connect", "userId": "alice"}))

	require.Eventually(t, func() bool {
		_, ok := f.registry.Lookup("alice")
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestWebSocketDisconnectAnnouncesOffline(t *testing.T) {
	f := newWSFixture(t, "")
	conn := f.dial(t, "")

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "connect", "userId": "alice"}))
	require.Eventually(t, func() bool {
		_, ok := f.registry.Lookup("alice")
		return ok
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return len(f.announcer.offlineCalls()) == 1
	}, time.Second, 5*time.Millisecond)
	_, ok := f.registry.Lookup("alice")
	assert.False(t, ok)
}

func TestWebSocketChatRoundTrip(t *testing.T) {
	f := newWSFixture(t, "")
	conn := f.dial(t, "")

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "connect", "userId": "alice"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "chat", "content": "hello"}))

	var env realtime.Envelope
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, realtime.EventChat, env.Type)
}
