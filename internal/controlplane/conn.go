package controlplane

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
	sendBuffer     = 100
	sendTimeout    = 5 * time.Second
	pendingBuffer  = 16
)

// ConnState tracks the lifecycle of one agent connection.
//
//	Connecting -> Active -> Draining -> Closed
//	Connecting -> Active -> Closed
//
// Draining is entered on disable/uninstall so in-flight sessions can be told
// to stop before the socket is torn down.
type ConnState int32

const (
	StateConnecting ConnState = iota
	StateActive
	StateDraining
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	ErrConnClosed  = errors.New("agent connection closed")
	ErrSendTimeout = errors.New("timeout sending to agent")
)

// Conn is one authenticated agent control-plane connection. It owns the
// WebSocket, a buffered outbound queue drained by the write pump, and the
// pending-request table used to correlate responses by request id.
type Conn struct {
	AgentID     string
	DeviceID    uuid.UUID
	ConnectedAt time.Time

	ws      *websocket.Conn
	send    chan []byte
	pending map[string]chan *Envelope

	mu     sync.RWMutex
	state  ConnState
	closed chan struct{}
}

func newConn(ws *websocket.Conn, agentID string, deviceID uuid.UUID) *Conn {
	return &Conn{
		AgentID:     agentID,
		DeviceID:    deviceID,
		ConnectedAt: time.Now(),
		ws:          ws,
		send:        make(chan []byte, sendBuffer),
		pending:     make(map[string]chan *Envelope),
		state:       StateConnecting,
		closed:      make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (c *Conn) State() ConnState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Conn) setState(s ConnState) {
	c.mu.Lock()
	prev := c.state
	c.state = s
	c.mu.Unlock()
	if prev != s {
		slog.Debug("agent connection state", "agent_id", c.AgentID, "from", prev, "to", s)
	}
}

// Send queues an envelope for delivery to the agent. It fails fast if the
// connection is closed or the queue stays full past sendTimeout, so a stalled
// agent never blocks the caller indefinitely.
func (c *Conn) Send(env *Envelope) error {
	if c.State() == StateClosed {
		return ErrConnClosed
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal control message: %w", err)
	}

	select {
	case c.send <- data:
		return nil
	case <-c.closed:
		return ErrConnClosed
	case <-time.After(sendTimeout):
		return fmt.Errorf("%w: %s", ErrSendTimeout, c.AgentID)
	}
}

// CreateRequest registers a pending request and returns its response channel.
// The caller must eventually call CloseRequest.
func (c *Conn) CreateRequest(requestID string) <-chan *Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan *Envelope, pendingBuffer)
	c.pending[requestID] = ch
	return ch
}

// CloseRequest closes and removes the response channel for a request.
func (c *Conn) CloseRequest(requestID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ch, ok := c.pending[requestID]; ok {
		close(ch)
		delete(c.pending, requestID)
	}
}

// HandleResponse routes an inbound envelope to the matching pending request.
// Returns false when no request is waiting on that id.
func (c *Conn) HandleResponse(env *Envelope) bool {
	c.mu.RLock()
	ch, ok := c.pending[env.RequestID]
	c.mu.RUnlock()

	if !ok {
		return false
	}

	select {
	case ch <- env:
	default:
		slog.Warn("response channel full, dropping message",
			"request_id", env.RequestID, "agent_id", c.AgentID)
	}
	return true
}

// beginDrain moves the connection into Draining. Returns false if it was not
// Active.
func (c *Conn) beginDrain() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive {
		return false
	}
	c.state = StateDraining
	return true
}

// Close transitions to Closed, wakes all pending requests and stops the write
// pump. Safe to call more than once.
func (c *Conn) Close() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	close(c.closed)
	c.mu.Unlock()

	if c.ws != nil {
		c.ws.Close()
	}
}

// Done is closed when the connection has fully shut down.
func (c *Conn) Done() <-chan struct{} {
	return c.closed
}

// readPump reads envelopes off the socket and hands them to handler until the
// socket errors or the connection closes. It owns the read side entirely.
func (c *Conn) readPump(handler func(*Envelope)) {
	defer c.Close()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("agent socket read error", "agent_id", c.AgentID, "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			slog.Warn("dropping malformed control message", "agent_id", c.AgentID, "error", err)
			continue
		}
		handler(&env)
	}
}

// writePump drains the send queue onto the socket and keeps the connection
// alive with pings.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.closed:
			return
		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				slog.Debug("agent socket write error", "agent_id", c.AgentID, "error", err)
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
