package websocket

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

func setupHubTest(t *testing.T) (*Hub, *websocket.Conn) {
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, Serve(hub, w, r))
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	return hub, conn
}

func TestHub_PublishReachesClient(t *testing.T) {
	hub, conn := setupHubTest(t)

	hub.Publish(EventToastAdded, map[string]string{"message": "Switched to Admin 📋"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, EventToastAdded, event.Type)
	assert.Equal(t, "Switched to Admin 📋", event.Data["message"])
}

func TestHub_ClientMessageReachesHandler(t *testing.T) {
	hub, conn := setupHubTest(t)

	received := make(chan ClientMessage, 1)
	hub.SetHandler(func(_ *Client, msg ClientMessage) {
		received <- msg
	})

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"navigate","tab":"admin"}`)))

	select {
	case msg := <-received:
		assert.Equal(t, "navigate", msg.Type)
		assert.Equal(t, "admin", msg.Tab)
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not called")
	}
}

func TestHub_RateLimit(t *testing.T) {
	hub := NewHub()
	calls := 0
	hub.SetHandler(func(_ *Client, _ ClientMessage) { calls++ })

	client := &Client{Hub: hub, ID: "local", LastResetTime: time.Now()}
	for i := 0; i < maxMessagesPerSecond+5; i++ {
		hub.HandleClientMessage(client, []byte(`{"type":"navigate","tab":"verify"}`))
	}

	assert.Equal(t, maxMessagesPerSecond, calls)
}

func dialWithOrigin(t *testing.T, hub *Hub, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = Serve(hub, w, r)
	}))
	t.Cleanup(server.Close)

	header := http.Header{}
	header.Set("Origin", origin)
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if conn != nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

func TestServe_RejectsForeignOrigin(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	hub.SetAllowedOrigins([]string{"http://localhost:3000"})

	_, resp, err := dialWithOrigin(t, hub, "https://evil.example")

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestServe_AllowedOrigins(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	hub.SetAllowedOrigins([]string{"http://localhost:3000"})

	_, _, err := dialWithOrigin(t, hub, "http://localhost:3000")
	require.NoError(t, err)

	// 같은 호스트에서 렌더링된 페이지
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = Serve(hub, w, r)
	}))
	t.Cleanup(server.Close)
	header := http.Header{}
	header.Set("Origin", server.URL)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), header)
	require.NoError(t, err)
	conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() >= 1 }, time.Second, 5*time.Millisecond)
}
