package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestPublishReachesSubscribers(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub)

	require.Eventually(t, func() bool {
		return hub.Subscribers() == 1
	}, time.Second, 5*time.Millisecond)

	hub.Publish("message", map[string]string{"content": "hello"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope struct {
		Event string            `json:"event"`
		Data  map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, "message", envelope.Event)
	assert.Equal(t, "hello", envelope.Data["content"])
}

func TestDisconnectedClientIsRemoved(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub)

	require.Eventually(t, func() bool {
		return hub.Subscribers() == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return hub.Subscribers() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestPublishWithNoSubscribers(t *testing.T) {
	hub := NewHub()
	// Must not panic or block
	hub.Publish("message", map[string]string{"content": "into the void"})
	assert.Equal(t, 0, hub.Subscribers())
}
