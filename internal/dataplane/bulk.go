package dataplane

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wardenhq/warden-server/internal/store"
)

// Bulk data types agents are known to upload. Anything else is logged and
// dropped without failing the call.
const (
	BulkTypeDiagnostics      = "diagnostics"
	BulkTypeCrashDump        = "crash_dump"
	BulkTypePerformanceTrace = "performance_trace"
)

// bulkHandler consumes one fully assembled bulk payload.
type bulkHandler func(ctx context.Context, deviceID uuid.UUID, requestID string, payload []byte)

func (s *Server) bulkHandlers() map[string]bulkHandler {
	return map[string]bulkHandler{
		BulkTypeDiagnostics:      s.handleDiagnostics,
		BulkTypeCrashDump:        s.handleCrashDump,
		BulkTypePerformanceTrace: s.handlePerformanceTrace,
	}
}

// routeBulkPayload dispatches an assembled payload to its type handler.
// Unrecognized types are not an error; the agent already did the work of
// sending and the call reports success regardless.
func (s *Server) routeBulkPayload(ctx context.Context, deviceID uuid.UUID, requestID, dataType string, payload []byte) {
	handler, ok := s.bulkHandlers()[dataType]
	if !ok {
		slog.Warn("unknown bulk data type, ignoring payload",
			"data_type", dataType, "request_id", requestID, "size", len(payload))
		return
	}
	handler(ctx, deviceID, requestID, payload)
}

// handleDiagnostics stores a diagnostics bundle as a log entry so it shows up
// in the device's timeline, and pushes it to the dashboard in full.
func (s *Server) handleDiagnostics(ctx context.Context, deviceID uuid.UUID, requestID string, payload []byte) {
	entry := &store.LogEntry{
		DeviceID: deviceID,
		Source:   "diagnostics",
		Level:    "info",
		EventID:  requestID,
		Message:  string(payload),
	}
	if err := s.store.StoreLogEntry(ctx, entry); err != nil {
		slog.Error("failed to store diagnostics bundle",
			"device_id", deviceID, "request_id", requestID, "error", err)
	}
}

// handleCrashDump records the arrival of a crash dump. The dump body itself
// is too large for the log store; only its metadata is kept.
func (s *Server) handleCrashDump(ctx context.Context, deviceID uuid.UUID, requestID string, payload []byte) {
	entry := &store.LogEntry{
		DeviceID: deviceID,
		Source:   "crash_dump",
		Level:    "error",
		EventID:  requestID,
		Message:  "crash dump received",
	}
	if err := s.store.StoreLogEntry(ctx, entry); err != nil {
		slog.Error("failed to record crash dump",
			"device_id", deviceID, "request_id", requestID, "size", len(payload), "error", err)
	}
}

func (s *Server) handlePerformanceTrace(ctx context.Context, deviceID uuid.UUID, requestID string, payload []byte) {
	entry := &store.LogEntry{
		DeviceID: deviceID,
		Source:   "performance_trace",
		Level:    "info",
		EventID:  requestID,
		Message:  string(payload),
	}
	if err := s.store.StoreLogEntry(ctx, entry); err != nil {
		slog.Error("failed to store performance trace",
			"device_id", deviceID, "request_id", requestID, "error", err)
	}
}
