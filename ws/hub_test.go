package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/pkg/contextkeys"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(hub, nil)
	r.GET("/ws/chat", func(c *gin.Context) {
		if uid := c.Query("uid"); uid != "" {
			c.Set(contextkeys.UserIDKey, uid)
		}
		h.ServeChat(c)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, uid string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat?uid=" + uid
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitConnected(t *testing.T, hub *Hub, uid string) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.IsUserConnected(uid) }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_DeliversOnlyToTargetUsers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)
	srv := newTestServer(t, hub)

	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")
	waitConnected(t, hub, "alice")
	waitConnected(t, hub, "bob")

	hub.SendToUsers([]string{"alice"}, map[string]string{"type": "message", "room_id": "r1"})

	var got map[string]string
	_ = alice.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, alice.ReadJSON(&got))
	assert.Equal(t, "r1", got["room_id"])

	_ = bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := bob.ReadMessage()
	assert.Error(t, err, "bob must not receive alice's event")
}

func TestHub_UnregistersOnClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)
	srv := newTestServer(t, hub)

	conn := dial(t, srv, "carol")
	waitConnected(t, hub, "carol")
	assert.Equal(t, 1, hub.ConnectionCount())

	conn.Close()
	require.Eventually(t, func() bool { return !hub.IsUserConnected("carol") }, 2*time.Second, 10*time.Millisecond)
}

func TestServeChat_RequiresUser(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub)

	res, err := http.Get(srv.URL + "/ws/chat")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
