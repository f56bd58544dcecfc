package certs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wardenhq/warden-server/internal/store"
)

// ackTimeout bounds how long the distributor waits for one agent's
// acknowledgment before counting it failed.
const ackTimeout = 30 * time.Second

// Sender pushes certificate material to one connected agent and blocks for
// its acknowledgment. Implemented by the control-plane server.
type Sender interface {
	ConnectedAgents() []string
	SendCertificate(ctx context.Context, agentID, certPEM, certHash string) error
}

// Tally is the aggregate outcome of one distribution round. Individual agent
// failures never fail the round; they only show up here.
type Tally struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Distributor fans a certificate out to every connected agent concurrently
// and records each agent's outcome.
type Distributor struct {
	sender Sender
	store  store.Store
}

func NewDistributor(sender Sender, st store.Store) *Distributor {
	return &Distributor{sender: sender, store: st}
}

// Distribute pushes certPEM to all currently connected agents. Each agent is
// independent; outcomes are order-insensitive and only the tally writes are
// serialized.
func (d *Distributor) Distribute(ctx context.Context, certPEM string) Tally {
	certHash := CertHash(certPEM)
	agents := d.sender.ConnectedAgents()

	slog.Info("Distributing certificate", "agents", len(agents), "cert_hash", certHash)

	var (
		mu    sync.Mutex
		tally = Tally{Attempted: len(agents)}
		wg    sync.WaitGroup
	)

	for _, agentID := range agents {
		wg.Add(1)
		go func(agentID string) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, ackTimeout)
			defer cancel()

			err := d.sender.SendCertificate(sendCtx, agentID, certPEM, certHash)
			if err != nil {
				slog.Warn("certificate delivery failed", "agent_id", agentID, "error", err)
			}

			if recErr := d.store.RecordCertificateStatus(ctx, agentID, certHash, err == nil); recErr != nil {
				slog.Error("failed to record certificate status", "agent_id", agentID, "error", recErr)
			}

			mu.Lock()
			if err == nil {
				tally.Succeeded++
			} else {
				tally.Failed++
			}
			mu.Unlock()
		}(agentID)
	}
	wg.Wait()

	slog.Info("Certificate distribution finished",
		"attempted", tally.Attempted, "succeeded", tally.Succeeded, "failed", tally.Failed)
	return tally
}
