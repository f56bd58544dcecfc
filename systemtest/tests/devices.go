package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden-server/internal/registry"
	"github.com/wardenhq/warden-server/internal/store"
)

// TestDeviceLifecycle exercises the device persistence paths against a real
// database: connectivity flags, telemetry, logs and certificate records.
func TestDeviceLifecycle(t *testing.T, st *store.Postgres) {
	ctx := context.Background()

	// Device rows are created by the fleet CRUD service in production;
	// seed one directly.
	_, err := st.Pool().Exec(ctx,
		`INSERT INTO devices (agent_id, hostname) VALUES ($1, $2)`,
		"lifecycle-agent", "lifecycle-host")
	require.NoError(t, err)

	device, err := st.GetDeviceByAgentID(ctx, "lifecycle-agent")
	require.NoError(t, err)
	assert.Equal(t, "lifecycle-host", device.Hostname)
	assert.Equal(t, registry.StatusOffline, device.Status)

	t.Run("unknown agent", func(t *testing.T) {
		_, err := st.GetDeviceByAgentID(ctx, "no-such-agent")
		assert.ErrorIs(t, err, store.ErrDeviceNotFound)
	})

	t.Run("connectivity flags", func(t *testing.T) {
		require.NoError(t, st.UpdateDeviceControlPlaneStatus(ctx, device.ID, true))

		status, lastSeen, disabled, err := st.GetDeviceStatus(ctx, device.ID)
		require.NoError(t, err)
		assert.Equal(t, registry.StatusOnline, status)
		assert.WithinDuration(t, time.Now(), lastSeen, time.Minute)
		assert.False(t, disabled)

		count, err := st.GetConnectedDeviceCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		require.NoError(t, st.UpdateDeviceControlPlaneStatus(ctx, device.ID, false))
		status, _, _, err = st.GetDeviceStatus(ctx, device.ID)
		require.NoError(t, err)
		assert.Equal(t, registry.StatusOffline, status)
	})

	t.Run("disable and enable", func(t *testing.T) {
		require.NoError(t, st.SetDeviceDisabled(ctx, device.ID, true))
		status, _, disabled, err := st.GetDeviceStatus(ctx, device.ID)
		require.NoError(t, err)
		assert.Equal(t, registry.StatusDisabled, status)
		assert.True(t, disabled)

		require.NoError(t, st.SetDeviceDisabled(ctx, device.ID, false))
		_, _, disabled, err = st.GetDeviceStatus(ctx, device.ID)
		require.NoError(t, err)
		assert.False(t, disabled)
	})

	t.Run("metrics sample", func(t *testing.T) {
		require.NoError(t, st.InsertMetricsSample(ctx, &store.MetricsSample{
			DeviceID:      device.ID,
			Timestamp:     time.Now().UTC(),
			CPUPercent:    42.0,
			MemoryPercent: 60.0,
			MemoryUsed:    8 << 30,
			DiskTotal:     512 << 30,
			ProcessCount:  100,
		}))
	})

	t.Run("system info and inventory", func(t *testing.T) {
		require.NoError(t, st.UpdateDeviceSystemInfo(ctx, device.ID, &store.SystemInfo{
			Hostname:     "renamed-host",
			OS:           "linux",
			Architecture: "amd64",
			CPUCores:     8,
			TotalMemory:  16 << 30,
		}))

		require.NoError(t, st.StoreSoftwareInventory(ctx, device.ID, []store.InstalledSoftware{
			{Name: "openssh-server", Version: "9.6"},
			{Name: "curl", Version: "8.5"},
		}))

		// Inventory replaces wholesale.
		require.NoError(t, st.StoreSoftwareInventory(ctx, device.ID, []store.InstalledSoftware{
			{Name: "curl", Version: "8.6"},
		}))
		var n int
		require.NoError(t, st.Pool().QueryRow(ctx,
			`SELECT COUNT(*) FROM device_software WHERE device_id = $1`, device.ID).Scan(&n))
		assert.Equal(t, 1, n)

		updated, err := st.GetDeviceByAgentID(ctx, "lifecycle-agent")
		require.NoError(t, err)
		assert.Equal(t, "renamed-host", updated.Hostname)
	})

	t.Run("log entries", func(t *testing.T) {
		require.NoError(t, st.StoreLogEntry(ctx, &store.LogEntry{
			DeviceID:  device.ID,
			Timestamp: time.Now().UTC(),
			Source:    "system",
			Level:     "info",
			Message:   "service started",
		}))
	})

	t.Run("command lifecycle", func(t *testing.T) {
		cmd := &store.Command{
			ID:          uuid.New(),
			DeviceID:    device.ID,
			CommandType: "shell",
			Command:     "uptime",
			Status:      "pending",
		}
		require.NoError(t, st.CreateCommand(ctx, cmd))
		require.NoError(t, st.CompleteCommand(ctx, cmd.ID, true, "up 3 days", "", 0))

		var status, output string
		require.NoError(t, st.Pool().QueryRow(ctx,
			`SELECT status, output FROM commands WHERE id = $1`, cmd.ID).Scan(&status, &output))
		assert.Equal(t, "completed", status)
		assert.Equal(t, "up 3 days", output)
	})

	t.Run("certificate record upserts", func(t *testing.T) {
		require.NoError(t, st.RecordCertificateStatus(ctx, "lifecycle-agent", "hash-1", true))
		require.NoError(t, st.RecordCertificateStatus(ctx, "lifecycle-agent", "hash-2", false))

		var hash string
		var success bool
		require.NoError(t, st.Pool().QueryRow(ctx,
			`SELECT cert_hash, success FROM device_certificates WHERE agent_id = $1`,
			"lifecycle-agent").Scan(&hash, &success))
		assert.Equal(t, "hash-2", hash)
		assert.False(t, success)
	})
}
