package controlplane

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionKind is the flavor of interactive session multiplexed over the
// control plane.
type SessionKind string

const (
	SessionTerminal      SessionKind = "terminal"
	SessionRemoteDesktop SessionKind = "remote-desktop"
	SessionWebRTC        SessionKind = "webrtc"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one live interactive sub-channel bound to a single agent. The
// requesting UI and the agent both hold its id, but the SessionManager owns
// the lifecycle.
type Session struct {
	ID        string
	AgentID   string
	DeviceID  uuid.UUID
	Kind      SessionKind
	CreatedAt time.Time
}

// SessionManager tracks interactive sessions keyed by session id. Sessions
// die on explicit stop, on agent disconnect, or on control-plane channel
// loss; data-plane activity is unaffected.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session for an agent and returns it. The id is
// generated here so the server remains the single authority on session ids.
func (sm *SessionManager) Create(agentID string, deviceID uuid.UUID, kind SessionKind) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		AgentID:   agentID,
		DeviceID:  deviceID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	sm.mu.Lock()
	sm.sessions[s.ID] = s
	total := len(sm.sessions)
	sm.mu.Unlock()

	slog.Info("session started", "session_id", s.ID, "agent_id", agentID, "kind", kind, "total_sessions", total)
	return s
}

// Get returns the session for id, or ErrSessionNotFound. Sending to or
// resizing a closed session is an error, never a silent no-op.
func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close removes the session. Returns ErrSessionNotFound if absent so callers
// can surface double-closes.
func (sm *SessionManager) Close(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, ok := sm.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(sm.sessions, id)
	slog.Info("session closed", "session_id", id, "remaining", len(sm.sessions))
	return nil
}

// CloseAllForAgent drops every session owned by the agent and returns them,
// so the caller can tell the agent (if still reachable) to stop each one.
// Invoked on disconnect and when a connection starts draining.
func (sm *SessionManager) CloseAllForAgent(agentID string) []*Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var closed []*Session
	for id, s := range sm.sessions {
		if s.AgentID == agentID {
			closed = append(closed, s)
			delete(sm.sessions, id)
		}
	}
	if len(closed) > 0 {
		slog.Info("sessions cascade-closed", "agent_id", agentID, "count", len(closed))
	}
	return closed
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
