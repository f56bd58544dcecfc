package controlplane

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden-server/internal/notify"
	"github.com/wardenhq/warden-server/internal/registry"
	"github.com/wardenhq/warden-server/internal/store"
)

// stubStore embeds the Store interface; only the methods a test exercises
// are implemented.
type stubStore struct {
	store.Store

	mu         sync.Mutex
	devices    map[uuid.UUID]*store.Device
	commands   []*store.Command
	disabled   map[uuid.UUID]bool
	intervals  map[uuid.UUID]int
	uninstalls map[uuid.UUID]bool
}

func newStubStore() *stubStore {
	return &stubStore{
		devices:    make(map[uuid.UUID]*store.Device),
		disabled:   make(map[uuid.UUID]bool),
		intervals:  make(map[uuid.UUID]int),
		uninstalls: make(map[uuid.UUID]bool),
	}
}

func (s *stubStore) addDevice(agentID string) *store.Device {
	d := &store.Device{ID: uuid.New(), AgentID: agentID}
	s.mu.Lock()
	s.devices[d.ID] = d
	s.mu.Unlock()
	return d
}

func (s *stubStore) GetDeviceByID(_ context.Context, id uuid.UUID) (*store.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[id]
	if !ok {
		return nil, store.ErrDeviceNotFound
	}
	return d, nil
}

func (s *stubStore) GetDeviceByAgentID(_ context.Context, agentID string) (*store.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.devices {
		if d.AgentID == agentID {
			return d, nil
		}
	}
	return nil, store.ErrDeviceNotFound
}

func (s *stubStore) CreateCommand(_ context.Context, cmd *store.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, cmd)
	return nil
}

func (s *stubStore) SetDeviceDisabled(_ context.Context, id uuid.UUID, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled[id] = disabled
	return nil
}

func (s *stubStore) SetDeviceMetricsInterval(_ context.Context, id uuid.UUID, secs int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intervals[id] = secs
	return nil
}

func (s *stubStore) SetDeviceUninstalling(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uninstalls[id] = true
	return nil
}

func (s *stubStore) UpdateDeviceControlPlaneStatus(context.Context, uuid.UUID, bool) error {
	return nil
}

func (s *stubStore) UpdateDeviceLastSeen(context.Context, uuid.UUID, time.Time) error {
	return nil
}

// newTestServer wires a Server with an already-attached fake connection for
// the given agent, bypassing the WebSocket handshake.
func newTestServer(t *testing.T, st store.Store, agentID string, deviceID uuid.UUID) (*Server, *Conn) {
	t.Helper()
	srv := NewServer(registry.New(), st, notify.Discard{}, NewSessionManager())
	t.Cleanup(srv.Stop)

	conn := newConn(nil, agentID, deviceID)
	conn.setState(StateActive)
	srv.mu.Lock()
	srv.conns[agentID] = conn
	srv.mu.Unlock()
	srv.registry.Register(agentID, registry.ChannelControl)
	return srv, conn
}

// nextSent pops the next queued outbound envelope from a connection.
func nextSent(t *testing.T, conn *Conn) *Envelope {
	t.Helper()
	select {
	case data := <-conn.send:
		var env Envelope
		require.NoError(t, json.Unmarshal(data, &env))
		return &env
	case <-time.After(time.Second):
		t.Fatal("no message queued")
		return nil
	}
}

func TestExecuteCommandQueuesAndPersists(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv, conn := newTestServer(t, st, "agent-1", device.ID)

	commandID, err := srv.ExecuteCommand(context.Background(), device.ID, "shell", "uptime", 30)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, commandID)

	require.Len(t, st.commands, 1)
	assert.Equal(t, "uptime", st.commands[0].Command)
	assert.Equal(t, "pending", st.commands[0].Status)

	env := nextSent(t, conn)
	assert.Equal(t, MsgTypeExecuteCommand, env.Type)

	var payload CommandPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, commandID.String(), payload.CommandID)
	assert.Equal(t, 30, payload.TimeoutSecs)
}

func TestExecuteCommandOfflineAgent(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-offline")
	srv := NewServer(registry.New(), st, notify.Discard{}, NewSessionManager())
	defer srv.Stop()

	_, err := srv.ExecuteCommand(context.Background(), device.ID, "shell", "uptime", 0)
	assert.ErrorIs(t, err, ErrAgentNotConnected)
	assert.Empty(t, st.commands)
}

func TestExecuteCommandUnknownDevice(t *testing.T) {
	st := newStubStore()
	srv := NewServer(registry.New(), st, notify.Discard{}, NewSessionManager())
	defer srv.Stop()

	_, err := srv.ExecuteCommand(context.Background(), uuid.New(), "shell", "uptime", 0)
	assert.ErrorIs(t, err, store.ErrDeviceNotFound)
}

func TestRoundTripCorrelation(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv, conn := newTestServer(t, st, "agent-1", device.ID)

	// Deliver the agent's answer once the request shows up on the queue.
	go func() {
		data := <-conn.send
		var sent Envelope
		if json.Unmarshal(data, &sent) != nil {
			return
		}
		resp := &Envelope{Type: MsgTypeResponse, RequestID: sent.RequestID, Success: true,
			Payload: json.RawMessage(`{"drives":["C:"]}`)}
		conn.HandleResponse(resp)
	}()

	payload, err := srv.ListDrives(context.Background(), device.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"drives":["C:"]}`, string(payload))
}

func TestRoundTripAgentError(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv, conn := newTestServer(t, st, "agent-1", device.ID)

	go func() {
		data := <-conn.send
		var sent Envelope
		if json.Unmarshal(data, &sent) != nil {
			return
		}
		conn.HandleResponse(&Envelope{Type: MsgTypeResponse, RequestID: sent.RequestID,
			Success: false, Error: "access denied"})
	}()

	_, err := srv.ListFiles(context.Background(), device.ID, "/root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestRoundTripTimesOutWithContext(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv, _ := newTestServer(t, st, "agent-1", device.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := srv.Ping(ctx, device.ID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTerminalInputWrongSessionKind(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv, _ := newTestServer(t, st, "agent-1", device.ID)

	sess := srv.sessions.Create("agent-1", device.ID, SessionWebRTC)

	err := srv.TerminalInput(sess.ID, []byte("ls\n"))
	assert.ErrorIs(t, err, ErrWrongSessionKind)

	err = srv.ResizeTerminal(sess.ID, 80, 24)
	assert.ErrorIs(t, err, ErrWrongSessionKind)
}

func TestTerminalInputUnknownSession(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv, _ := newTestServer(t, st, "agent-1", device.ID)

	err := srv.TerminalInput("no-such-session", []byte("x"))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDisableDeviceDrainsConnection(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv, conn := newTestServer(t, st, "agent-1", device.ID)

	srv.sessions.Create("agent-1", device.ID, SessionTerminal)

	require.NoError(t, srv.DisableDevice(context.Background(), device.ID))

	assert.True(t, st.disabled[device.ID])
	assert.Equal(t, 0, srv.sessions.Count())

	// The connection left Active the moment the drain began.
	state := conn.State()
	assert.True(t, state == StateDraining || state == StateClosed)

	// A close_terminal for the cascade-closed session, then the final
	// disconnect notice.
	first := nextSent(t, conn)
	assert.Equal(t, MsgTypeCloseTerminal, first.Type)
	second := nextSent(t, conn)
	assert.Equal(t, MsgTypeDisconnect, second.Type)
}

func TestDetachOfSupersededConnectionKeepsReplacementSessions(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv, oldConn := newTestServer(t, st, "agent-1", device.ID)

	replacement := newConn(nil, "agent-1", device.ID)
	replacement.setState(StateActive)
	srv.attach(replacement)

	// Session opened on the replacement while the superseded connection is
	// still tearing down.
	sess := srv.sessions.Create("agent-1", device.ID, SessionTerminal)

	srv.detach(oldConn)

	got, err := srv.sessions.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	live, ok := srv.GetConn("agent-1")
	require.True(t, ok)
	assert.Same(t, replacement, live)

	// The replacement's own detach still cascades.
	srv.detach(replacement)
	_, err = srv.sessions.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUninstallDeviceRequiresConnection(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv := NewServer(registry.New(), st, notify.Discard{}, NewSessionManager())
	defer srv.Stop()

	err := srv.UninstallDevice(context.Background(), device.ID)
	assert.ErrorIs(t, err, ErrAgentNotConnected)
	assert.False(t, st.uninstalls[device.ID])
}

func TestUninstallDeviceMarksStateAndNotifiesAgent(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv, conn := newTestServer(t, st, "agent-1", device.ID)

	require.NoError(t, srv.UninstallDevice(context.Background(), device.ID))
	assert.True(t, st.uninstalls[device.ID])

	env := nextSent(t, conn)
	assert.Equal(t, MsgTypeUninstallAgent, env.Type)
}

func TestSetMetricsIntervalPersistsEvenWhenOffline(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv := NewServer(registry.New(), st, notify.Discard{}, NewSessionManager())
	defer srv.Stop()

	err := srv.SetMetricsInterval(context.Background(), device.ID, 30)
	assert.ErrorIs(t, err, ErrAgentNotConnected)
	assert.Equal(t, 30, st.intervals[device.ID])
}

func TestSendCertificateAck(t *testing.T) {
	st := newStubStore()
	device := st.addDevice("agent-1")
	srv, conn := newTestServer(t, st, "agent-1", device.ID)

	go func() {
		data := <-conn.send
		var sent Envelope
		if json.Unmarshal(data, &sent) != nil {
			return
		}
		conn.HandleResponse(&Envelope{Type: MsgTypeCertUpdateAck, RequestID: sent.RequestID, Success: true})
	}()

	err := srv.SendCertificate(context.Background(), "agent-1", "PEM", "hash")
	assert.NoError(t, err)
}

func TestSendCertificateNotConnected(t *testing.T) {
	srv := NewServer(registry.New(), newStubStore(), notify.Discard{}, NewSessionManager())
	defer srv.Stop()

	err := srv.SendCertificate(context.Background(), "ghost", "PEM", "hash")
	assert.ErrorIs(t, err, ErrAgentNotConnected)
}
