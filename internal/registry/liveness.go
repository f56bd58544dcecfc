package registry

import "time"

// Status is the externally visible liveness of a device.
type Status string

const (
	StatusOnline   Status = "online"
	StatusOffline  Status = "offline"
	StatusDisabled Status = "disabled"
)

// OnlineRecencyWindow is how long a persisted last-seen timestamp keeps a
// device online when it is not connected to this server instance. Roughly one
// heartbeat interval plus margin. Every call site that reasons about recency
// must use this constant so they agree.
const OnlineRecencyWindow = 90 * time.Second

// ResolveStatus computes a device's status from local connection state plus
// the persisted record. The persisted fallback covers agents that are live but
// terminated by a different backend, where this process holds no socket.
//
// Disabled overrides everything, including a live connection.
func (r *Registry) ResolveStatus(agentID string, persisted Status, lastSeen time.Time, isDisabled bool, now time.Time) Status {
	if isDisabled {
		return StatusDisabled
	}
	if r.IsLocallyConnected(agentID) {
		return StatusOnline
	}
	if persisted == StatusOnline && now.Sub(lastSeen) < OnlineRecencyWindow {
		return StatusOnline
	}
	return StatusOffline
}
