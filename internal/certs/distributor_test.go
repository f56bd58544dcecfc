package certs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden-server/internal/store"
)

type fakeSender struct {
	agents  []string
	failing map[string]bool

	mu    sync.Mutex
	calls []string
}

func (f *fakeSender) ConnectedAgents() []string { return f.agents }

func (f *fakeSender) SendCertificate(_ context.Context, agentID, _, _ string) error {
	f.mu.Lock()
	f.calls = append(f.calls, agentID)
	f.mu.Unlock()

	if f.failing[agentID] {
		return errors.New("no ack")
	}
	return nil
}

type recordingStore struct {
	store.Store

	mu      sync.Mutex
	records map[string]bool
	hashes  map[string]string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{records: make(map[string]bool), hashes: make(map[string]string)}
}

func (r *recordingStore) RecordCertificateStatus(_ context.Context, agentID, certHash string, success bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[agentID] = success
	r.hashes[agentID] = certHash
	return nil
}

func TestDistributeTallies(t *testing.T) {
	sender := &fakeSender{
		agents:  []string{"a", "b", "c", "d"},
		failing: map[string]bool{"b": true, "d": true},
	}
	rs := newRecordingStore()
	d := NewDistributor(sender, rs)

	tally := d.Distribute(context.Background(), "CERT PEM")

	assert.Equal(t, Tally{Attempted: 4, Succeeded: 2, Failed: 2}, tally)
	assert.Len(t, sender.calls, 4)

	assert.True(t, rs.records["a"])
	assert.False(t, rs.records["b"])
	assert.True(t, rs.records["c"])
	assert.False(t, rs.records["d"])
}

func TestDistributeRecordsCertHash(t *testing.T) {
	sender := &fakeSender{agents: []string{"a"}}
	rs := newRecordingStore()
	d := NewDistributor(sender, rs)

	certPEM := "-----BEGIN CERTIFICATE-----"
	d.Distribute(context.Background(), certPEM)

	require.Contains(t, rs.hashes, "a")
	assert.Equal(t, CertHash(certPEM), rs.hashes["a"])
	assert.Len(t, CertHash(certPEM), 64)
}

func TestDistributeWithNoAgents(t *testing.T) {
	d := NewDistributor(&fakeSender{}, newRecordingStore())

	tally := d.Distribute(context.Background(), "CERT PEM")
	assert.Equal(t, Tally{}, tally)
}

func TestCertHashIsStable(t *testing.T) {
	assert.Equal(t, CertHash("x"), CertHash("x"))
	assert.NotEqual(t, CertHash("x"), CertHash("y"))
}
