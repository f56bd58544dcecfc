package registry

import (
	"log/slog"
	"sync"
	"time"
)

// Channel identifies which of the two agent channels a connection entry
// belongs to. Control and data channels have independent lifecycles.
type Channel string

const (
	ChannelControl Channel = "control"
	ChannelData    Channel = "data"
)

// Entry records a live channel for one agent. Entries exist only while the
// channel is up; they are removed on disconnect, error or explicit close.
type Entry struct {
	AgentID        string
	Channel        Channel
	ConnectedAt    time.Time
	LastActivityAt time.Time
}

type key struct {
	agentID string
	channel Channel
}

// Registry tracks which agents currently hold a live channel to this server
// instance. It is pure bookkeeping: no I/O, no persistence. All methods are
// safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[key]*Entry
	now     func() time.Time
}

func New() *Registry {
	return &Registry{
		entries: make(map[key]*Entry),
		now:     time.Now,
	}
}

// Register inserts or overwrites the entry for (agentID, channel). A second
// registration for the same key supersedes the first; the caller that owned
// the old connection is expected to tear it down.
func (r *Registry) Register(agentID string, ch Channel) {
	now := r.now()
	r.mu.Lock()
	r.entries[key{agentID, ch}] = &Entry{
		AgentID:        agentID,
		Channel:        ch,
		ConnectedAt:    now,
		LastActivityAt: now,
	}
	total := len(r.entries)
	r.mu.Unlock()

	slog.Info("channel registered", "agent_id", agentID, "channel", ch, "total_entries", total)
}

// Touch refreshes last-activity for the agent on every inbound message.
// Both channels are touched so that a silent control socket does not look
// stale while the data plane is streaming.
func (r *Registry) Touch(agentID string) {
	now := r.now()
	r.mu.Lock()
	for _, ch := range []Channel{ChannelControl, ChannelData} {
		if e, ok := r.entries[key{agentID, ch}]; ok {
			e.LastActivityAt = now
		}
	}
	r.mu.Unlock()
}

// Unregister removes the entry for (agentID, channel). No-op if absent.
func (r *Registry) Unregister(agentID string, ch Channel) {
	r.mu.Lock()
	_, existed := r.entries[key{agentID, ch}]
	delete(r.entries, key{agentID, ch})
	total := len(r.entries)
	r.mu.Unlock()

	if existed {
		slog.Info("channel unregistered", "agent_id", agentID, "channel", ch, "total_entries", total)
	}
}

// IsLocallyConnected reports whether the agent holds a live control-plane
// channel to this server instance. The data plane alone does not make an
// agent "connected" for liveness purposes.
func (r *Registry) IsLocallyConnected(agentID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key{agentID, ChannelControl}]
	return ok
}

// Get returns a copy of the entry for (agentID, channel).
func (r *Registry) Get(agentID string, ch Channel) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key{agentID, ch}]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// ConnectedAgents returns the ids of all agents with a live control-plane
// channel. Used by the certificate distributor to snapshot the fleet.
func (r *Registry) ConnectedAgents() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agents := make([]string, 0, len(r.entries))
	for k := range r.entries {
		if k.channel == ChannelControl {
			agents = append(agents, k.agentID)
		}
	}
	return agents
}

// Count returns the number of agents with a live control-plane channel.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for k := range r.entries {
		if k.channel == ChannelControl {
			n++
		}
	}
	return n
}

// Stale returns agents whose control-plane channel has seen no activity for
// longer than maxIdle. The control-plane server sweeps these periodically.
func (r *Registry) Stale(maxIdle time.Duration) []string {
	now := r.now()
	r.mu.RLock()
	defer r.mu.RUnlock()

	var agents []string
	for k, e := range r.entries {
		if k.channel == ChannelControl && now.Sub(e.LastActivityAt) > maxIdle {
			agents = append(agents, k.agentID)
		}
	}
	return agents
}
