package notify

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allowAll struct{}

func (allowAll) Verify(string) error { return nil }

type denyAll struct{}

func (denyAll) Verify(string) error { return errors.New("bad token") }

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=x"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func TestHubPublishReachesClient(t *testing.T) {
	hub := NewHub(allowAll{})
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.Publish(EventDeviceStatus, map[string]any{"agentId": "agent-1", "status": "online"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, EventDeviceStatus, env.Event)
	assert.False(t, env.Timestamp.IsZero())

	payload, ok := env.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "agent-1", payload["agentId"])
}

func TestHubRejectsBadToken(t *testing.T) {
	hub := NewHub(denyAll{})

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=whatever"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubDropsDisconnectedClient(t *testing.T) {
	hub := NewHub(allowAll{})
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestDiscardNotifier(t *testing.T) {
	// Must not panic or block.
	Discard{}.Publish(EventMetricsUpdated, map[string]any{"x": 1})
}
