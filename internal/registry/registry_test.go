package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_And_IsLocallyConnected(t *testing.T) {
	r := New()

	assert.False(t, r.IsLocallyConnected("agent-1"))

	r.Register("agent-1", ChannelControl)
	assert.True(t, r.IsLocallyConnected("agent-1"))

	r.Unregister("agent-1", ChannelControl)
	assert.False(t, r.IsLocallyConnected("agent-1"))
}

func TestRegister_DataChannelDoesNotCountAsConnected(t *testing.T) {
	r := New()

	r.Register("agent-1", ChannelData)
	assert.False(t, r.IsLocallyConnected("agent-1"))

	entry, ok := r.Get("agent-1", ChannelData)
	require.True(t, ok)
	assert.Equal(t, "agent-1", entry.AgentID)
	assert.Equal(t, ChannelData, entry.Channel)
}

func TestRegister_Supersedes(t *testing.T) {
	r := New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	r.Register("agent-1", ChannelControl)

	r.now = func() time.Time { return base.Add(time.Minute) }
	r.Register("agent-1", ChannelControl)

	entry, ok := r.Get("agent-1", ChannelControl)
	require.True(t, ok)
	assert.Equal(t, base.Add(time.Minute), entry.ConnectedAt)
	assert.Len(t, r.ConnectedAgents(), 1)
}

func TestUnregister_AbsentIsNoop(t *testing.T) {
	r := New()
	r.Unregister("never-registered", ChannelControl)
	assert.Equal(t, 0, r.Count())
}

func TestTouch_RefreshesBothChannels(t *testing.T) {
	r := New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	r.Register("agent-1", ChannelControl)
	r.Register("agent-1", ChannelData)

	r.now = func() time.Time { return base.Add(30 * time.Second) }
	r.Touch("agent-1")

	ctrl, _ := r.Get("agent-1", ChannelControl)
	data, _ := r.Get("agent-1", ChannelData)
	assert.Equal(t, base.Add(30*time.Second), ctrl.LastActivityAt)
	assert.Equal(t, base.Add(30*time.Second), data.LastActivityAt)
}

func TestStale(t *testing.T) {
	r := New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	r.Register("idle", ChannelControl)
	r.Register("busy", ChannelControl)

	r.now = func() time.Time { return base.Add(2 * time.Minute) }
	r.Touch("busy")

	r.now = func() time.Time { return base.Add(3 * time.Minute) }
	stale := r.Stale(2 * time.Minute)
	assert.Equal(t, []string{"idle"}, stale)
}

func TestResolveStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		connected    bool
		persisted    Status
		lastSeenAgo  time.Duration
		isDisabled   bool
		want         Status
	}{
		{"disabled overrides live connection", true, StatusOnline, 0, true, StatusDisabled},
		{"disabled overrides recency", false, StatusOnline, time.Second, true, StatusDisabled},
		{"locally connected ignores stale last seen", true, StatusOffline, 24 * time.Hour, false, StatusOnline},
		{"recent persisted online", false, StatusOnline, 89 * time.Second, false, StatusOnline},
		{"persisted online but too old", false, StatusOnline, 90 * time.Second, false, StatusOffline},
		{"recent but persisted offline", false, StatusOffline, time.Second, false, StatusOffline},
		{"nothing", false, StatusOffline, 24 * time.Hour, false, StatusOffline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			if tt.connected {
				r.Register("agent-1", ChannelControl)
			}
			got := r.ResolveStatus("agent-1", tt.persisted, now.Add(-tt.lastSeenAgo), tt.isDisabled, now)
			assert.Equal(t, tt.want, got)
		})
	}
}
