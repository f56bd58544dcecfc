package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wardenhq/warden-server/internal/registry"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already exists")
)

// Device is the subset of the persisted device record the communication layer
// reads and writes to make connectivity and session decisions. Business fields
// (tickets, alerts, tags) belong to other services.
type Device struct {
	ID              uuid.UUID
	AgentID         string
	Hostname        string
	Status          registry.Status
	LastSeen        time.Time
	IsDisabled      bool
	MetricsInterval int // seconds; 0 means agent default
}

// MetricsSample is one normalized telemetry sample from an agent.
type MetricsSample struct {
	DeviceID        uuid.UUID
	Timestamp       time.Time
	CPUPercent      float64
	MemoryPercent   float64
	MemoryUsed      uint64
	MemoryAvailable uint64
	DiskPercent     float64
	DiskUsed        uint64
	DiskTotal       uint64
	NetworkRxBytes  uint64
	NetworkTxBytes  uint64
	ProcessCount    int32
	Uptime          uint64
}

// SystemInfo is the hardware/OS description uploaded with an inventory.
type SystemInfo struct {
	Hostname     string
	OS           string
	OSVersion    string
	Platform     string
	Architecture string
	CPUModel     string
	CPUCores     int32
	CPUThreads   int32
	CPUSpeed     float64
	TotalMemory  uint64
	SerialNumber string
	Manufacturer string
	Model        string
}

// InstalledSoftware is one entry of a device's software inventory.
type InstalledSoftware struct {
	Name        string
	Version     string
	Publisher   string
	InstallDate string
}

// LogEntry is one agent-side log line ingested over the data plane.
type LogEntry struct {
	DeviceID  uuid.UUID
	Timestamp time.Time
	Source    string
	Level     string
	EventID   string
	Message   string
}

// User is an operator account for the dashboard and API.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Command is a remote command issued to a device over the control plane.
type Command struct {
	ID          uuid.UUID
	DeviceID    uuid.UUID
	CommandType string
	Command     string
	Status      string
	Output      string
	Error       string
	ExitCode    *int
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Store is the persistence contract consumed by both channel servers. All
// methods must be safe to call concurrently from multiple connection contexts.
type Store interface {
	GetDeviceByAgentID(ctx context.Context, agentID string) (*Device, error)
	GetDeviceByID(ctx context.Context, id uuid.UUID) (*Device, error)
	GetDeviceStatus(ctx context.Context, id uuid.UUID) (registry.Status, time.Time, bool, error)
	GetConnectedDeviceCount(ctx context.Context) (int, error)

	UpdateDeviceControlPlaneStatus(ctx context.Context, deviceID uuid.UUID, connected bool) error
	UpdateDeviceDataPlaneStatus(ctx context.Context, deviceID uuid.UUID, connected bool) error
	UpdateDeviceLastSeen(ctx context.Context, deviceID uuid.UUID, at time.Time) error
	SetDeviceDisabled(ctx context.Context, deviceID uuid.UUID, disabled bool) error
	SetDeviceUninstalling(ctx context.Context, deviceID uuid.UUID) error
	SetDeviceMetricsInterval(ctx context.Context, deviceID uuid.UUID, intervalSeconds int) error

	InsertMetricsSample(ctx context.Context, sample *MetricsSample) error
	UpdateDeviceSystemInfo(ctx context.Context, deviceID uuid.UUID, info *SystemInfo) error
	StoreSoftwareInventory(ctx context.Context, deviceID uuid.UUID, software []InstalledSoftware) error
	StoreLogEntry(ctx context.Context, entry *LogEntry) error

	CreateCommand(ctx context.Context, cmd *Command) error
	CompleteCommand(ctx context.Context, commandID uuid.UUID, success bool, output, errMsg string, exitCode int) error

	RecordCertificateStatus(ctx context.Context, agentID string, certHash string, success bool) error

	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]User, int64, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
