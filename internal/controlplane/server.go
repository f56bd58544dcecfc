package controlplane

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wardenhq/warden-server/internal/notify"
	"github.com/wardenhq/warden-server/internal/registry"
	"github.com/wardenhq/warden-server/internal/store"
)

const (
	authTimeout    = 10 * time.Second
	persistTimeout = 5 * time.Second
	drainGrace     = 2 * time.Second
	sweepInterval  = 30 * time.Second
)

// Server terminates one persistent WebSocket per agent and multiplexes
// commands, interactive sessions and lifecycle operations over it.
type Server struct {
	registry *registry.Registry
	store    store.Store
	notifier notify.Notifier
	sessions *SessionManager

	mu    sync.RWMutex
	conns map[string]*Conn

	upgrader websocket.Upgrader
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewServer(reg *registry.Registry, st store.Store, notifier notify.Notifier, sessions *SessionManager) *Server {
	s := &Server{
		registry: reg,
		store:    st,
		notifier: notifier,
		sessions: sessions,
		conns:    make(map[string]*Conn),
		stopCh:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	go s.sweepStale()
	return s
}

// Sessions exposes the session manager for the UI boundary.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// GetConn returns the live connection for an agent, if any.
func (s *Server) GetConn(agentID string) (*Conn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conns[agentID]
	return c, ok
}

// ConnectedAgents snapshots the ids of all agents with a live control socket.
func (s *Server) ConnectedAgents() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.conns))
	for id := range s.conns {
		out = append(out, id)
	}
	return out
}

// HandleWS upgrades an agent HTTP request into the persistent control
// channel. The first frame must be an auth envelope naming the agent.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade agent socket", "remote", r.RemoteAddr, "error", err)
		return
	}

	device, agentID, err := s.authenticate(ws)
	if err != nil {
		slog.Warn("agent rejected", "remote", r.RemoteAddr, "agent_id", agentID, "error", err)
		ws.Close()
		return
	}

	conn := newConn(ws, agentID, device.ID)
	s.attach(conn)
	conn.setState(StateActive)

	slog.Info("Agent connected", "agent_id", agentID, "device_id", device.ID, "remote", r.RemoteAddr)
	s.persistControlStatus(conn, true)
	s.notifier.Publish(notify.EventDeviceStatus, map[string]any{
		"deviceId": device.ID,
		"agentId":  agentID,
		"status":   string(registry.StatusOnline),
	})

	go conn.writePump()
	conn.readPump(func(env *Envelope) { s.processMessage(conn, env) })

	// readPump returned: the socket is gone or Close was called.
	s.detach(conn)
}

// authenticate reads the auth frame and validates the device mapping. A
// missing mapping is a structured error result to the agent, not a fault.
func (s *Server) authenticate(ws *websocket.Conn) (*store.Device, string, error) {
	ws.SetReadDeadline(time.Now().Add(authTimeout))
	defer ws.SetReadDeadline(time.Time{})

	_, data, err := ws.ReadMessage()
	if err != nil {
		return nil, "", errors.New("no auth message received")
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Type != MsgTypeAuth {
		s.sendAuthResult(ws, false, "Expected auth message")
		return nil, "", errors.New("first message was not auth")
	}

	var auth AuthPayload
	if err := json.Unmarshal(env.Payload, &auth); err != nil || auth.AgentID == "" {
		s.sendAuthResult(ws, false, "Missing agent_id")
		return nil, "", errors.New("auth payload missing agent id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	device, err := s.store.GetDeviceByAgentID(ctx, auth.AgentID)
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			s.sendAuthResult(ws, false, "Device not found")
			return nil, auth.AgentID, errors.New("unknown device mapping")
		}
		s.sendAuthResult(ws, false, "Internal error")
		return nil, auth.AgentID, err
	}

	if device.IsDisabled {
		s.sendAuthResult(ws, false, "Device has been disabled by administrator")
		return nil, auth.AgentID, errors.New("device disabled")
	}

	s.sendAuthResult(ws, true, "")
	return device, auth.AgentID, nil
}

func (s *Server) sendAuthResult(ws *websocket.Conn, success bool, errMsg string) {
	env, err := NewEnvelope(MsgTypeAuthResponse, "", AuthResponsePayload{Success: success, Error: errMsg})
	if err != nil {
		return
	}
	data, _ := json.Marshal(env)
	ws.SetWriteDeadline(time.Now().Add(writeWait))
	ws.WriteMessage(websocket.TextMessage, data)
}

// attach stores the connection, superseding any previous one for the same
// agent identity. The superseded connection is closed; its cleanup sees it is
// no longer current and leaves the registry entry alone.
func (s *Server) attach(conn *Conn) {
	s.mu.Lock()
	old, had := s.conns[conn.AgentID]
	s.conns[conn.AgentID] = conn
	s.mu.Unlock()

	if had {
		slog.Warn("agent already connected, superseding connection", "agent_id", conn.AgentID)
		old.Close()
	}
	s.registry.Register(conn.AgentID, registry.ChannelControl)
}

// detach runs when a connection ends for any reason. It cascade-closes the
// agent's sessions but leaves unrelated data-plane calls untouched.
func (s *Server) detach(conn *Conn) {
	conn.Close()

	s.mu.Lock()
	current := s.conns[conn.AgentID] == conn
	if current {
		delete(s.conns, conn.AgentID)
	}
	s.mu.Unlock()

	if !current {
		// A newer connection superseded this one; its sessions, registry
		// entry, and persisted status belong to the replacement now.
		return
	}

	s.sessions.CloseAllForAgent(conn.AgentID)
	s.registry.Unregister(conn.AgentID, registry.ChannelControl)
	s.persistControlStatus(conn, false)
	s.notifier.Publish(notify.EventDeviceStatus, map[string]any{
		"deviceId": conn.DeviceID,
		"agentId":  conn.AgentID,
		"status":   string(registry.StatusOffline),
	})
	slog.Info("Agent disconnected", "agent_id", conn.AgentID)
}

// persistControlStatus records the control-plane connectivity flag.
// Best-effort: failures are logged, not retried.
func (s *Server) persistControlStatus(conn *Conn, connected bool) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.store.UpdateDeviceControlPlaneStatus(ctx, conn.DeviceID, connected); err != nil {
		slog.Error("failed to persist control-plane status",
			"agent_id", conn.AgentID, "connected", connected, "error", err)
	}
}

func (s *Server) processMessage(conn *Conn, env *Envelope) {
	s.registry.Touch(conn.AgentID)

	switch env.Type {
	case MsgTypeHeartbeat:
		s.handleHeartbeat(conn, env)

	case MsgTypePing:
		pong, err := NewEnvelope(MsgTypePong, env.RequestID, nil)
		if err == nil {
			conn.Send(pong)
		}

	case MsgTypeResponse, MsgTypeFileData, MsgTypeCertUpdateAck:
		if !conn.HandleResponse(env) {
			slog.Warn("response for unknown request",
				"agent_id", conn.AgentID, "type", env.Type, "request_id", env.RequestID)
		}

	case MsgTypeScanProgress:
		// Intermediate progress for a directory scan; the final result still
		// arrives as a response on the same request id.
		s.notifier.Publish(notify.EventFilesProgress, env.Payload)

	case MsgTypeCommandResult:
		s.handleCommandResult(conn, env)

	case MsgTypeTerminalOutput:
		s.handleTerminalOutput(conn, env)

	case MsgTypeWebRTCSignal:
		// Signaling blobs are relayed verbatim; the host never interprets them.
		s.notifier.Publish(notify.EventWebRTCSignal, map[string]any{
			"agentId": conn.AgentID,
			"payload": env.Payload,
		})

	default:
		slog.Warn("unknown control message type", "agent_id", conn.AgentID, "type", env.Type)
	}
}

func (s *Server) handleHeartbeat(conn *Conn, env *Envelope) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.store.UpdateDeviceLastSeen(ctx, conn.DeviceID, time.Now().UTC()); err != nil {
			slog.Debug("failed to persist heartbeat", "agent_id", conn.AgentID, "error", err)
		}
	}()

	ack, err := NewEnvelope(MsgTypeHeartbeatAck, env.RequestID, nil)
	if err == nil {
		conn.Send(ack)
	}
}

func (s *Server) handleCommandResult(conn *Conn, env *Envelope) {
	var result CommandResultPayload
	if err := json.Unmarshal(env.Payload, &result); err != nil {
		slog.Warn("malformed command result", "agent_id", conn.AgentID, "error", err)
		return
	}

	commandID, err := parseUUID(result.CommandID)
	if err != nil {
		slog.Warn("command result with invalid id", "agent_id", conn.AgentID, "command_id", result.CommandID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.store.CompleteCommand(ctx, commandID, result.Success, result.Output, result.Error, result.ExitCode); err != nil {
		slog.Error("failed to persist command result", "command_id", result.CommandID, "error", err)
	}

	s.notifier.Publish(notify.EventCommandCompleted, map[string]any{
		"deviceId":  conn.DeviceID,
		"commandId": result.CommandID,
		"success":   result.Success,
		"exitCode":  result.ExitCode,
	})
}

func (s *Server) handleTerminalOutput(conn *Conn, env *Envelope) {
	var data TerminalDataPayload
	if err := json.Unmarshal(env.Payload, &data); err != nil {
		slog.Warn("malformed terminal output", "agent_id", conn.AgentID, "error", err)
		return
	}

	if _, err := s.sessions.Get(data.SessionID); err != nil {
		slog.Warn("terminal output for unknown session",
			"agent_id", conn.AgentID, "session_id", data.SessionID)
		return
	}

	s.notifier.Publish(notify.EventTerminalOutput, map[string]any{
		"sessionId": data.SessionID,
		"data":      data.Data,
	})
}

// drainAndClose tells the agent's sessions to stop, delivers a final
// disconnect message, then tears the socket down once the queue empties (or
// the grace period expires).
func (s *Server) drainAndClose(conn *Conn, reason string) {
	if !conn.beginDrain() {
		conn.Close()
		return
	}

	for _, sess := range s.sessions.CloseAllForAgent(conn.AgentID) {
		msgType := MsgTypeCloseTerminal
		if sess.Kind != SessionTerminal {
			msgType = MsgTypeWebRTCStop
		}
		if env, err := NewEnvelope(msgType, "", map[string]string{"sessionId": sess.ID}); err == nil {
			conn.Send(env)
		}
	}

	if env, err := NewEnvelope(MsgTypeDisconnect, "", DisconnectPayload{Reason: reason}); err == nil {
		conn.Send(env)
	}

	go func() {
		deadline := time.After(drainGrace)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-deadline:
				conn.Close()
				return
			case <-ticker.C:
				if len(conn.send) == 0 {
					conn.Close()
					return
				}
			}
		}
	}()
}

// sweepStale tears down control connections that have gone silent for twice
// the liveness recency window.
func (s *Server) sweepStale() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			for _, agentID := range s.registry.Stale(2 * registry.OnlineRecencyWindow) {
				if conn, ok := s.GetConn(agentID); ok {
					slog.Warn("closing stale agent connection", "agent_id", agentID)
					conn.Close()
				}
			}
		}
	}
}

// Stop closes every agent connection and halts background sweeping.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })

	s.mu.Lock()
	conns := make([]*Conn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
