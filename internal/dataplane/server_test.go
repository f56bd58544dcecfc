package dataplane

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wardenhq/warden-server/internal/registry"
	"github.com/wardenhq/warden-server/internal/store"
	"github.com/wardenhq/warden-server/proto"
)

// fakeStore implements the store methods the data plane touches; the
// embedded interface covers the rest.
type fakeStore struct {
	store.Store

	mu          sync.Mutex
	lookupErr   error
	devices     map[string]*store.Device
	samples     []*store.MetricsSample
	logEntries  []*store.LogEntry
	systemInfos map[uuid.UUID]*store.SystemInfo
	software    map[uuid.UUID][]store.InstalledSoftware
	dataPlane   map[uuid.UUID]bool

	dataPlaneWrites int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		devices:     make(map[string]*store.Device),
		systemInfos: make(map[uuid.UUID]*store.SystemInfo),
		software:    make(map[uuid.UUID][]store.InstalledSoftware),
		dataPlane:   make(map[uuid.UUID]bool),
	}
}

func (f *fakeStore) addDevice(agentID string) *store.Device {
	d := &store.Device{ID: uuid.New(), AgentID: agentID, Status: registry.StatusOffline}
	f.mu.Lock()
	f.devices[agentID] = d
	f.mu.Unlock()
	return d
}

func (f *fakeStore) GetDeviceByAgentID(_ context.Context, agentID string) (*store.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	d, ok := f.devices[agentID]
	if !ok {
		return nil, store.ErrDeviceNotFound
	}
	return d, nil
}

func (f *fakeStore) GetDeviceByID(_ context.Context, id uuid.UUID) (*store.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.devices {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, store.ErrDeviceNotFound
}

func (f *fakeStore) GetDeviceStatus(_ context.Context, id uuid.UUID) (registry.Status, time.Time, bool, error) {
	return registry.StatusOffline, time.Time{}, false, nil
}

func (f *fakeStore) GetConnectedDeviceCount(context.Context) (int, error) { return 0, nil }

func (f *fakeStore) UpdateDeviceControlPlaneStatus(context.Context, uuid.UUID, bool) error {
	return nil
}

func (f *fakeStore) UpdateDeviceDataPlaneStatus(_ context.Context, deviceID uuid.UUID, connected bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dataPlane[deviceID] = connected
	f.dataPlaneWrites++
	return nil
}

func (f *fakeStore) UpdateDeviceLastSeen(context.Context, uuid.UUID, time.Time) error { return nil }
func (f *fakeStore) SetDeviceDisabled(context.Context, uuid.UUID, bool) error         { return nil }
func (f *fakeStore) SetDeviceUninstalling(context.Context, uuid.UUID) error           { return nil }
func (f *fakeStore) SetDeviceMetricsInterval(context.Context, uuid.UUID, int) error   { return nil }

func (f *fakeStore) InsertMetricsSample(_ context.Context, sample *store.MetricsSample) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples = append(f.samples, sample)
	return nil
}

func (f *fakeStore) UpdateDeviceSystemInfo(_ context.Context, deviceID uuid.UUID, info *store.SystemInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systemInfos[deviceID] = info
	return nil
}

func (f *fakeStore) StoreSoftwareInventory(_ context.Context, deviceID uuid.UUID, software []store.InstalledSoftware) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.software[deviceID] = software
	return nil
}

func (f *fakeStore) StoreLogEntry(_ context.Context, entry *store.LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logEntries = append(f.logEntries, entry)
	return nil
}

func (f *fakeStore) CreateCommand(context.Context, *store.Command) error { return nil }
func (f *fakeStore) CompleteCommand(context.Context, uuid.UUID, bool, string, string, int) error {
	return nil
}
func (f *fakeStore) RecordCertificateStatus(context.Context, string, string, bool) error {
	return nil
}

// captureNotifier records published events and payloads for assertions.
type captureNotifier struct {
	mu       sync.Mutex
	events   []string
	payloads map[string][]map[string]any
}

func (n *captureNotifier) Publish(event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	if m, ok := payload.(map[string]any); ok {
		if n.payloads == nil {
			n.payloads = make(map[string][]map[string]any)
		}
		n.payloads[event] = append(n.payloads[event], m)
	}
}

func (n *captureNotifier) payloadsFor(event string) []map[string]any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.payloads[event]
}

func (n *captureNotifier) published(event string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.events {
		if e == event {
			return true
		}
	}
	return false
}

func newTestServer(fs *fakeStore) (*Server, *captureNotifier) {
	notifier := &captureNotifier{}
	return NewServer(0, registry.New(), fs, notifier, nil), notifier
}

func TestUploadInventoryMissingAgentID(t *testing.T) {
	fs := newFakeStore()
	srv, _ := newTestServer(fs)

	resp, err := srv.UploadInventory(context.Background(), &proto.InventoryData{})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Missing agent_id", resp.Error)
	assert.Empty(t, fs.systemInfos)
	assert.Empty(t, fs.software)
}

func TestUploadInventoryUnknownDevice(t *testing.T) {
	fs := newFakeStore()
	srv, _ := newTestServer(fs)

	resp, err := srv.UploadInventory(context.Background(), &proto.InventoryData{AgentId: "ghost"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Device not found", resp.Error)
}

func TestUploadInventoryPersistsAndNotifies(t *testing.T) {
	fs := newFakeStore()
	device := fs.addDevice("agent-1")
	srv, notifier := newTestServer(fs)

	resp, err := srv.UploadInventory(context.Background(), &proto.InventoryData{
		AgentId: "agent-1",
		SystemInfo: &proto.SystemInfo{
			Hostname:    "host-1",
			Os:          "linux",
			CpuCores:    8,
			TotalMemory: "34359738368",
		},
		Software: []*proto.InstalledSoftware{
			{Name: "curl", Version: "8.5.0"},
			{Name: "openssl", Version: "3.2.1"},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	info := fs.systemInfos[device.ID]
	require.NotNil(t, info)
	assert.Equal(t, "host-1", info.Hostname)
	assert.Equal(t, uint64(34359738368), info.TotalMemory)
	assert.Len(t, fs.software[device.ID], 2)
	assert.True(t, notifier.published("inventory:updated"))
}

func TestRouteBulkPayloadUnknownTypeIsIgnored(t *testing.T) {
	fs := newFakeStore()
	device := fs.addDevice("agent-1")
	srv, _ := newTestServer(fs)

	srv.routeBulkPayload(context.Background(), device.ID, "req-1", "unknown_xyz", []byte("payload"))
	assert.Empty(t, fs.logEntries)
}

func TestRouteBulkPayloadDiagnostics(t *testing.T) {
	fs := newFakeStore()
	device := fs.addDevice("agent-1")
	srv, _ := newTestServer(fs)

	srv.routeBulkPayload(context.Background(), device.ID, "req-1", BulkTypeDiagnostics, []byte(`{"ok":true}`))

	require.Len(t, fs.logEntries, 1)
	assert.Equal(t, "diagnostics", fs.logEntries[0].Source)
	assert.Equal(t, `{"ok":true}`, fs.logEntries[0].Message)
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, isCancelled(status.Error(codes.Canceled, "client hung up")))
	assert.True(t, isCancelled(context.Canceled))
	assert.False(t, isCancelled(io.ErrUnexpectedEOF))
	assert.False(t, isCancelled(status.Error(codes.Unavailable, "gone")))
	assert.False(t, isCancelled(errors.New("boom")))
}

func TestNormalizeMetricsParsesDefensively(t *testing.T) {
	deviceID := uuid.New()
	sample := normalizeMetrics(deviceID, &proto.Metrics{
		Timestamp:      1700000000,
		CpuPercent:     42.5,
		MemoryUsed:     "18446744073709551615",
		DiskUsed:       "not-a-number",
		NetworkRxBytes: "",
		ProcessCount:   137,
	})

	assert.Equal(t, deviceID, sample.DeviceID)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), sample.Timestamp)
	assert.Equal(t, 42.5, sample.CPUPercent)
	assert.Equal(t, uint64(18446744073709551615), sample.MemoryUsed)
	assert.Equal(t, uint64(0), sample.DiskUsed)
	assert.Equal(t, uint64(0), sample.NetworkRxBytes)
	assert.Equal(t, int32(137), sample.ProcessCount)
}

func TestResolveAgentRegistersDataChannelOnce(t *testing.T) {
	fs := newFakeStore()
	device := fs.addDevice("agent-1")
	reg := registry.New()
	srv := NewServer(0, reg, fs, &captureNotifier{}, nil)

	seen := make(map[string]*store.Device)

	got, ok := srv.resolveAgent(context.Background(), "agent-1", seen)
	require.True(t, ok)
	assert.Equal(t, device.ID, got.ID)
	_, registered := reg.Get("agent-1", registry.ChannelData)
	assert.True(t, registered)
	assert.True(t, fs.dataPlane[device.ID])

	// Second message reuses the cached lookup; the connected flag is
	// written exactly once per call lifetime.
	got2, ok := srv.resolveAgent(context.Background(), "agent-1", seen)
	require.True(t, ok)
	assert.Same(t, got, got2)
	assert.Equal(t, 1, fs.dataPlaneWrites)

	// Control channel must not appear as connected from data-plane traffic.
	assert.False(t, reg.IsLocallyConnected("agent-1"))
}

func TestClearDataPlaneUnregistersAndPersistsFalse(t *testing.T) {
	fs := newFakeStore()
	device := fs.addDevice("agent-1")
	reg := registry.New()
	srv := NewServer(0, reg, fs, &captureNotifier{}, nil)

	seen := make(map[string]*store.Device)
	_, ok := srv.resolveAgent(context.Background(), "agent-1", seen)
	require.True(t, ok)

	srv.clearDataPlane("agent-1", device.ID)

	_, registered := reg.Get("agent-1", registry.ChannelData)
	assert.False(t, registered)
	assert.False(t, fs.dataPlane[device.ID])
	assert.Equal(t, 2, fs.dataPlaneWrites)
}

func TestResolveAgentDropsUnknownAndMissing(t *testing.T) {
	fs := newFakeStore()
	srv, _ := newTestServer(fs)
	seen := make(map[string]*store.Device)

	_, ok := srv.resolveAgent(context.Background(), "", seen)
	assert.False(t, ok)

	_, ok = srv.resolveAgent(context.Background(), "ghost", seen)
	assert.False(t, ok)
	assert.Empty(t, seen)
}
