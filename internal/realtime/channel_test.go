package realtime_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple/infrastructure"
	"ripple/internal/realtime"
)

// wsPair upgrades one server-side connection and dials it from a client,
// returning both ends.
func wsPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}
	serverConns := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case server := <-serverConns:
		return server, client
	case <-time.After(time.Second):
		t.Fatal("server connection never arrived")
		return nil, nil
	}
}

func TestWSChannelDeliversJSON(t *testing.T) {
	server, client := wsPair(t)
	ch := realtime.NewWSChannel(server, 8, discardLogger())
	defer ch.Close()

	require.NoError(t, ch.Send(realtime.UserOnline("alice")))

	var env realtime.Envelope
	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, client.ReadJSON(&env))
	assert.Equal(t, realtime.EventUserOnline, env.Type)
	assert.Equal(t, "alice", env.UserID)
}

func TestWSChannelSendAfterClose(t *testing.T) {
	server, _ := wsPair(t)
	ch := realtime.NewWSChannel(server, 8, discardLogger())

	ch.Close()
	err := ch.Send(realtime.UserOnline("alice"))
	assert.ErrorIs(t, err, infrastructure.ErrChannelClosed)
}

func TestWSChannelCloseIsIdempotent(t *testing.T) {
	server, _ := wsPair(t)
	ch := realtime.NewWSChannel(server, 8, discardLogger())

	ch.Close()
	ch.Close()
}

func TestWSChannelIDsAreUnique(t *testing.T) {
	s1, _ := wsPair(t)
	s2, _ := wsPair(t)
	c1 := realtime.NewWSChannel(s1, 8, discardLogger())
	c2 := realtime.NewWSChannel(s2, 8, discardLogger())
	defer c1.Close()
	defer c2.Close()

	assert.NotEqual(t, c1.ID(), c2.ID())
}
