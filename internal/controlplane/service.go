package controlplane

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardenhq/warden-server/internal/notify"
	"github.com/wardenhq/warden-server/internal/registry"
	"github.com/wardenhq/warden-server/internal/store"
)

var (
	// ErrAgentNotConnected means the device exists but holds no live
	// control channel to this server instance.
	ErrAgentNotConnected = errors.New("agent is not connected")

	// ErrWrongSessionKind means the operation does not apply to the
	// session's kind, e.g. resizing a remote-desktop session.
	ErrWrongSessionKind = errors.New("operation not supported for this session kind")
)

// roundTripTimeout bounds a single request/response exchange when the
// caller's context carries no earlier deadline.
const roundTripTimeout = 30 * time.Second

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// connForDevice resolves a device id to its live connection. Callers get a
// typed error when the mapping is missing or the agent is offline.
func (s *Server) connForDevice(ctx context.Context, deviceID uuid.UUID) (*Conn, *store.Device, error) {
	device, err := s.store.GetDeviceByID(ctx, deviceID)
	if err != nil {
		return nil, nil, err
	}
	conn, ok := s.GetConn(device.AgentID)
	if !ok {
		return nil, device, ErrAgentNotConnected
	}
	return conn, device, nil
}

// roundTrip sends env with a fresh request id and blocks for the matching
// response. It returns early if the context ends or the connection dies.
func (s *Server) roundTrip(ctx context.Context, conn *Conn, env *Envelope) (*Envelope, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, roundTripTimeout)
		defer cancel()
	}

	requestID := uuid.New().String()
	env.RequestID = requestID

	ch := conn.CreateRequest(requestID)
	defer conn.CloseRequest(requestID)

	if err := conn.Send(env); err != nil {
		return nil, err
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, ErrConnClosed
		}
		return resp, nil
	case <-conn.Done():
		return nil, ErrConnClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ExecuteCommand queues a shell command on the agent. The call returns once
// the agent has accepted the work; the result arrives asynchronously as a
// command_result message and is persisted then.
func (s *Server) ExecuteCommand(ctx context.Context, deviceID uuid.UUID, commandType, command string, timeoutSecs int) (uuid.UUID, error) {
	conn, _, err := s.connForDevice(ctx, deviceID)
	if err != nil {
		return uuid.Nil, err
	}

	cmd := &store.Command{
		ID:          uuid.New(),
		DeviceID:    deviceID,
		CommandType: commandType,
		Command:     command,
		Status:      "pending",
	}
	if err := s.store.CreateCommand(ctx, cmd); err != nil {
		return uuid.Nil, fmt.Errorf("failed to record command: %w", err)
	}

	env, err := NewEnvelope(MsgTypeExecuteCommand, "", CommandPayload{
		CommandID:   cmd.ID.String(),
		CommandType: commandType,
		Command:     command,
		TimeoutSecs: timeoutSecs,
	})
	if err != nil {
		return uuid.Nil, err
	}
	if err := conn.Send(env); err != nil {
		return uuid.Nil, err
	}
	return cmd.ID, nil
}

// Ping measures control-channel round-trip latency to the agent.
func (s *Server) Ping(ctx context.Context, deviceID uuid.UUID) (time.Duration, error) {
	conn, _, err := s.connForDevice(ctx, deviceID)
	if err != nil {
		return 0, err
	}

	env, err := NewEnvelope(MsgTypePing, "", nil)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	if _, err := s.roundTrip(ctx, conn, env); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// StartTerminal opens an interactive shell session on the agent and returns
// it once the agent confirms the shell is running.
func (s *Server) StartTerminal(ctx context.Context, deviceID uuid.UUID, cols, rows int) (*Session, error) {
	conn, device, err := s.connForDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Create(device.AgentID, deviceID, SessionTerminal)

	env, err := NewEnvelope(MsgTypeStartTerminal, "", StartTerminalPayload{
		SessionID: sess.ID,
		Cols:      cols,
		Rows:      rows,
	})
	if err != nil {
		s.sessions.Close(sess.ID)
		return nil, err
	}

	resp, err := s.roundTrip(ctx, conn, env)
	if err != nil {
		s.sessions.Close(sess.ID)
		return nil, err
	}
	if !resp.Success {
		s.sessions.Close(sess.ID)
		return nil, fmt.Errorf("agent refused terminal: %s", resp.Error)
	}
	return sess, nil
}

// TerminalInput forwards keystrokes to an open terminal session.
func (s *Server) TerminalInput(sessionID string, data []byte) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if sess.Kind != SessionTerminal {
		return ErrWrongSessionKind
	}

	conn, ok := s.GetConn(sess.AgentID)
	if !ok {
		return ErrAgentNotConnected
	}

	env, err := NewEnvelope(MsgTypeTerminalInput, "", TerminalDataPayload{SessionID: sessionID, Data: data})
	if err != nil {
		return err
	}
	return conn.Send(env)
}

// ResizeTerminal changes the pty dimensions. Terminal sessions only.
func (s *Server) ResizeTerminal(sessionID string, cols, rows int) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if sess.Kind != SessionTerminal {
		return ErrWrongSessionKind
	}

	conn, ok := s.GetConn(sess.AgentID)
	if !ok {
		return ErrAgentNotConnected
	}

	env, err := NewEnvelope(MsgTypeTerminalResize, "", TerminalResizePayload{
		SessionID: sessionID,
		Cols:      cols,
		Rows:      rows,
	})
	if err != nil {
		return err
	}
	return conn.Send(env)
}

// CloseSession ends an interactive session and tells the agent to stop its
// side, if still reachable. Closing an unknown session is an error.
func (s *Server) CloseSession(sessionID string) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := s.sessions.Close(sessionID); err != nil {
		return err
	}

	conn, ok := s.GetConn(sess.AgentID)
	if !ok {
		return nil
	}

	msgType := MsgTypeCloseTerminal
	if sess.Kind != SessionTerminal {
		msgType = MsgTypeWebRTCStop
	}
	env, err := NewEnvelope(msgType, "", map[string]string{"sessionId": sessionID})
	if err != nil {
		return err
	}
	return conn.Send(env)
}

// ListDrives asks the agent for its mounted volumes. The payload shape is
// owned by the agent; the host relays it to the UI untouched.
func (s *Server) ListDrives(ctx context.Context, deviceID uuid.UUID) (json.RawMessage, error) {
	return s.queryAgent(ctx, deviceID, MsgTypeListDrives, nil)
}

// ListFiles asks the agent for a directory listing.
func (s *Server) ListFiles(ctx context.Context, deviceID uuid.UUID, path string) (json.RawMessage, error) {
	return s.queryAgent(ctx, deviceID, MsgTypeListFiles, ListFilesPayload{Path: path})
}

// ScanDirectory asks the agent for recursive size information under a path.
// Progress frames arrive separately as scan_progress events; this blocks for
// the final result.
func (s *Server) ScanDirectory(ctx context.Context, deviceID uuid.UUID, path string, maxDepth int) (json.RawMessage, error) {
	return s.queryAgent(ctx, deviceID, MsgTypeScanDirectory, ScanDirectoryPayload{Path: path, MaxDepth: maxDepth})
}

func (s *Server) queryAgent(ctx context.Context, deviceID uuid.UUID, msgType string, payload any) (json.RawMessage, error) {
	conn, _, err := s.connForDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	env, err := NewEnvelope(msgType, "", payload)
	if err != nil {
		return nil, err
	}

	resp, err := s.roundTrip(ctx, conn, env)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("agent error: %s", resp.Error)
	}
	return resp.Payload, nil
}

// DownloadFile fetches a file from the agent. The reply is a file_data
// envelope carrying the full content.
func (s *Server) DownloadFile(ctx context.Context, deviceID uuid.UUID, remotePath string) ([]byte, error) {
	conn, _, err := s.connForDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	env, err := NewEnvelope(MsgTypeDownloadFile, "", TransferFilePayload{RemotePath: remotePath})
	if err != nil {
		return nil, err
	}

	resp, err := s.roundTrip(ctx, conn, env)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("download failed: %s", resp.Error)
	}

	var file FileDataPayload
	if err := json.Unmarshal(resp.Payload, &file); err != nil {
		return nil, fmt.Errorf("malformed file data: %w", err)
	}
	return file.Data, nil
}

// UploadFile writes content to a path on the agent.
func (s *Server) UploadFile(ctx context.Context, deviceID uuid.UUID, remotePath string, data []byte) error {
	conn, _, err := s.connForDevice(ctx, deviceID)
	if err != nil {
		return err
	}

	env, err := NewEnvelope(MsgTypeUploadFile, "", FileDataPayload{Path: remotePath, Data: data})
	if err != nil {
		return err
	}

	resp, err := s.roundTrip(ctx, conn, env)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("upload failed: %s", resp.Error)
	}
	return nil
}

// StartWebRTC relays an SDP offer to the agent and returns its answer along
// with the session tracking the negotiation. Signaling content is opaque to
// the host.
func (s *Server) StartWebRTC(ctx context.Context, deviceID uuid.UUID, offer json.RawMessage) (*Session, json.RawMessage, error) {
	conn, device, err := s.connForDevice(ctx, deviceID)
	if err != nil {
		return nil, nil, err
	}

	sess := s.sessions.Create(device.AgentID, deviceID, SessionWebRTC)

	env, err := NewEnvelope(MsgTypeWebRTCStart, "", WebRTCStartPayload{SessionID: sess.ID, Offer: offer})
	if err != nil {
		s.sessions.Close(sess.ID)
		return nil, nil, err
	}

	resp, err := s.roundTrip(ctx, conn, env)
	if err != nil {
		s.sessions.Close(sess.ID)
		return nil, nil, err
	}
	if !resp.Success {
		s.sessions.Close(sess.ID)
		return nil, nil, fmt.Errorf("agent refused webrtc: %s", resp.Error)
	}
	return sess, resp.Payload, nil
}

// SendWebRTCSignal relays an ICE candidate or renegotiation blob to the
// agent, verbatim.
func (s *Server) SendWebRTCSignal(sessionID string, signal json.RawMessage) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if sess.Kind != SessionWebRTC {
		return ErrWrongSessionKind
	}

	conn, ok := s.GetConn(sess.AgentID)
	if !ok {
		return ErrAgentNotConnected
	}

	env, err := NewEnvelope(MsgTypeWebRTCSignal, "", WebRTCSignalPayload{SessionID: sessionID, Signal: signal})
	if err != nil {
		return err
	}
	return conn.Send(env)
}

// SetWebRTCQuality adjusts the stream quality preset for a live session.
func (s *Server) SetWebRTCQuality(sessionID, quality string) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if sess.Kind != SessionWebRTC {
		return ErrWrongSessionKind
	}

	conn, ok := s.GetConn(sess.AgentID)
	if !ok {
		return ErrAgentNotConnected
	}

	env, err := NewEnvelope(MsgTypeWebRTCSetQuality, "", WebRTCQualityPayload{Quality: quality})
	if err != nil {
		return err
	}
	env.SessionID = sessionID
	return conn.Send(env)
}

// DisableDevice marks a device administratively disabled and drains any live
// connection. Disabled wins over everything in status resolution, and the
// agent is refused on reconnect until re-enabled.
func (s *Server) DisableDevice(ctx context.Context, deviceID uuid.UUID) error {
	device, err := s.store.GetDeviceByID(ctx, deviceID)
	if err != nil {
		return err
	}
	if err := s.store.SetDeviceDisabled(ctx, deviceID, true); err != nil {
		return err
	}

	if conn, ok := s.GetConn(device.AgentID); ok {
		s.drainAndClose(conn, "Device has been disabled by administrator")
	}

	s.notifier.Publish(notify.EventDeviceStatus, map[string]any{
		"deviceId": deviceID,
		"agentId":  device.AgentID,
		"status":   string(registry.StatusDisabled),
	})
	return nil
}

// EnableDevice lifts the administrative disable. The agent reconnects on its
// own schedule; nothing is pushed.
func (s *Server) EnableDevice(ctx context.Context, deviceID uuid.UUID) error {
	device, err := s.store.GetDeviceByID(ctx, deviceID)
	if err != nil {
		return err
	}
	if err := s.store.SetDeviceDisabled(ctx, deviceID, false); err != nil {
		return err
	}

	s.notifier.Publish(notify.EventDeviceStatus, map[string]any{
		"deviceId": deviceID,
		"agentId":  device.AgentID,
		"status":   string(registry.StatusOffline),
	})
	return nil
}

// UninstallDevice orders the agent to remove itself. The device moves to the
// uninstalling state first so the record survives until the agent confirms;
// deletion happens elsewhere once that state is observed.
func (s *Server) UninstallDevice(ctx context.Context, deviceID uuid.UUID) error {
	conn, _, err := s.connForDevice(ctx, deviceID)
	if err != nil {
		return err
	}

	if err := s.store.SetDeviceUninstalling(ctx, deviceID); err != nil {
		return err
	}

	env, err := NewEnvelope(MsgTypeUninstallAgent, "", nil)
	if err != nil {
		return err
	}
	if err := conn.Send(env); err != nil {
		return err
	}

	s.drainAndClose(conn, "Agent uninstall requested")
	return nil
}

// SetMetricsInterval persists the reporting cadence and pushes it to the
// agent if connected. The persisted value applies at next connect otherwise.
func (s *Server) SetMetricsInterval(ctx context.Context, deviceID uuid.UUID, intervalSecs int) error {
	device, err := s.store.GetDeviceByID(ctx, deviceID)
	if err != nil {
		return err
	}
	if err := s.store.SetDeviceMetricsInterval(ctx, deviceID, intervalSecs); err != nil {
		return err
	}

	conn, ok := s.GetConn(device.AgentID)
	if !ok {
		return ErrAgentNotConnected
	}

	env, err := NewEnvelope(MsgTypeSetMetricsInterval, "", MetricsIntervalPayload{IntervalSecs: intervalSecs})
	if err != nil {
		return err
	}
	return conn.Send(env)
}

// SendCertificate pushes new certificate material to one agent and blocks
// for its acknowledgment. Used by the certificate distributor during fan-out.
func (s *Server) SendCertificate(ctx context.Context, agentID, certPEM, certHash string) error {
	conn, ok := s.GetConn(agentID)
	if !ok {
		return ErrAgentNotConnected
	}

	env, err := NewEnvelope(MsgTypeUpdateCertificate, "", CertificatePayload{CertPEM: certPEM, CertHash: certHash})
	if err != nil {
		return err
	}

	resp, err := s.roundTrip(ctx, conn, env)
	if err != nil {
		return err
	}
	if resp.Type != MsgTypeCertUpdateAck {
		return fmt.Errorf("unexpected reply type %q", resp.Type)
	}
	if !resp.Success {
		return fmt.Errorf("agent rejected certificate: %s", resp.Error)
	}
	return nil
}
