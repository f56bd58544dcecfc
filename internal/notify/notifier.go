package notify

// Event names pushed to dashboard clients. Payload shapes are documented on
// the emitting call sites.
const (
	EventMetricsUpdated   = "metrics:updated"
	EventInventoryUpdated = "inventory:updated"
	EventLogsNew          = "logs:new"
	EventFilesProgress    = "files:progress"
	EventFilesComplete    = "files:complete"
	EventBulkProgress     = "bulk:progress"
	EventBulkComplete     = "bulk:complete"
	EventDeviceStatus     = "device:status"
	EventCommandCompleted = "commands:completed"
	EventTerminalOutput   = "terminal:output"
	EventWebRTCSignal     = "webrtc:signal"
)

// Notifier delivers named events to UI collaborators. Implementations must be
// safe for concurrent use and must never block the caller on a slow consumer.
type Notifier interface {
	Publish(event string, payload any)
}

// Discard is a Notifier that drops everything. Useful in tests and in
// deployments without a dashboard.
type Discard struct{}

func (Discard) Publish(string, any) {}
