package controlplane

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnStateTransitions(t *testing.T) {
	c := newConn(nil, "agent-1", uuid.New())
	assert.Equal(t, StateConnecting, c.State())

	// Draining is only reachable from Active.
	assert.False(t, c.beginDrain())

	c.setState(StateActive)
	assert.True(t, c.beginDrain())
	assert.Equal(t, StateDraining, c.State())

	// A second drain attempt is a no-op.
	assert.False(t, c.beginDrain())

	c.Close()
	assert.Equal(t, StateClosed, c.State())

	// Close is idempotent.
	c.Close()
	assert.Equal(t, StateClosed, c.State())
}

func TestConnRequestCorrelation(t *testing.T) {
	c := newConn(nil, "agent-1", uuid.New())
	c.setState(StateActive)

	ch := c.CreateRequest("req-1")

	env := &Envelope{Type: MsgTypeResponse, RequestID: "req-1", Success: true}
	require.True(t, c.HandleResponse(env))

	got := <-ch
	assert.Same(t, env, got)

	c.CloseRequest("req-1")
	assert.False(t, c.HandleResponse(env))
}

func TestConnResponseForUnknownRequest(t *testing.T) {
	c := newConn(nil, "agent-1", uuid.New())
	assert.False(t, c.HandleResponse(&Envelope{RequestID: "never-created"}))
}

func TestConnCloseWakesPendingRequests(t *testing.T) {
	c := newConn(nil, "agent-1", uuid.New())
	c.setState(StateActive)

	ch := c.CreateRequest("req-1")
	c.Close()

	_, open := <-ch
	assert.False(t, open)

	select {
	case <-c.Done():
	default:
		t.Fatal("Done channel should be closed")
	}
}

func TestConnSendAfterClose(t *testing.T) {
	c := newConn(nil, "agent-1", uuid.New())
	c.Close()

	env, err := NewEnvelope(MsgTypePing, "", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Send(env), ErrConnClosed)
}

func TestConnSendQueuesMessage(t *testing.T) {
	c := newConn(nil, "agent-1", uuid.New())
	c.setState(StateActive)

	env, err := NewEnvelope(MsgTypeHeartbeatAck, "req-9", nil)
	require.NoError(t, err)
	require.NoError(t, c.Send(env))

	data := <-c.send
	var decoded Envelope
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, MsgTypeHeartbeatAck, decoded.Type)
	assert.Equal(t, "req-9", decoded.RequestID)
}

func TestEnvelopeWireFormat(t *testing.T) {
	env, err := NewEnvelope(MsgTypeExecuteCommand, "req-1", CommandPayload{
		CommandID: "cmd-1",
		Command:   "uptime",
	})
	require.NoError(t, err)
	assert.False(t, env.Timestamp.IsZero())

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "type")
	assert.Contains(t, raw, "requestId")
	assert.Contains(t, raw, "payload")

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw["payload"], &payload))
	assert.Equal(t, "cmd-1", payload["commandId"])
	assert.Equal(t, "uptime", payload["command"])
}
