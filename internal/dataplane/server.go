package dataplane

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"

	"github.com/wardenhq/warden-server/internal/notify"
	"github.com/wardenhq/warden-server/internal/registry"
	"github.com/wardenhq/warden-server/internal/store"
	"github.com/wardenhq/warden-server/proto"
)

const persistTimeout = 5 * time.Second

// Server terminates the agents' telemetry channel. It shares the connection
// registry with the control plane but its streams live and die independently
// of any control socket.
type Server struct {
	proto.UnimplementedDataPlaneServiceServer

	registry *registry.Registry
	store    store.Store
	notifier notify.Notifier

	grpcServer *grpc.Server
	port       int
	creds      credentials.TransportCredentials
	listener   net.Listener
}

func NewServer(port int, reg *registry.Registry, st store.Store, notifier notify.Notifier, creds credentials.TransportCredentials) *Server {
	return &Server{
		registry: reg,
		store:    st,
		notifier: notifier,
		port:     port,
		creds:    creds,
	}
}

func (s *Server) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}
	s.listener = lis

	var opts []grpc.ServerOption
	if s.creds != nil {
		opts = append(opts, grpc.Creds(s.creds))
	}
	s.grpcServer = grpc.NewServer(opts...)
	proto.RegisterDataPlaneServiceServer(s.grpcServer, s)

	slog.Info("Starting data-plane gRPC server", "port", s.port, "tls", s.creds != nil)

	if err := s.grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve gRPC: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	slog.Info("Stopping data-plane gRPC server")

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		slog.Info("data-plane gRPC server stopped gracefully")
	case <-ctx.Done():
		slog.Warn("data-plane gRPC server stop timeout, forcing shutdown")
		s.grpcServer.Stop()
	}
	return nil
}

// isCancelled reports whether a stream terminated because the client hung
// up. That is the normal signature of an agent disconnect, never an error.
func isCancelled(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	return status.Code(err) == codes.Canceled
}

// StreamMetrics ingests a long-lived stream of telemetry samples. Samples
// for unknown agents are dropped with a warning; the stream itself keeps
// going.
func (s *Server) StreamMetrics(stream proto.DataPlaneService_StreamMetricsServer) error {
	ctx := stream.Context()

	// Agents seen during this call, so bookkeeping can be undone on exit.
	seen := make(map[string]*store.Device)
	defer func() {
		for agentID, device := range seen {
			s.clearDataPlane(agentID, device.ID)
		}
	}()

	var received int32
	for {
		msg, err := stream.Recv()
		if err == io.EOF {
			return stream.SendAndClose(&proto.StreamSummary{Success: true, ReceivedCount: received})
		}
		if err != nil {
			if isCancelled(err) {
				slog.Info("metrics stream closed by agent", "received", received)
				return nil
			}
			slog.Error("metrics stream failed", "received", received, "error", err)
			return err
		}

		device, ok := s.resolveAgent(ctx, msg.AgentId, seen)
		if !ok {
			continue
		}
		received++

		sample := normalizeMetrics(device.ID, msg)
		if err := s.store.InsertMetricsSample(ctx, sample); err != nil {
			slog.Error("failed to persist metrics sample", "agent_id", msg.AgentId, "error", err)
			continue
		}

		s.notifier.Publish(notify.EventMetricsUpdated, map[string]any{
			"deviceId":        device.ID,
			"agentId":         msg.AgentId,
			"timestamp":       sample.Timestamp,
			"cpuPercent":      sample.CPUPercent,
			"memoryPercent":   sample.MemoryPercent,
			"memoryUsed":      sample.MemoryUsed,
			"memoryAvailable": sample.MemoryAvailable,
			"diskPercent":     sample.DiskPercent,
			"diskUsed":        sample.DiskUsed,
			"diskTotal":       sample.DiskTotal,
			"networkRxBytes":  sample.NetworkRxBytes,
			"networkTxBytes":  sample.NetworkTxBytes,
			"processCount":    sample.ProcessCount,
			"uptime":          sample.Uptime,
		})
	}
}

// resolveAgent looks up the device for an agent id, registering the
// data-plane channel the first time an agent shows up within this call.
// Unknown agents are dropped, not fatal.
func (s *Server) resolveAgent(ctx context.Context, agentID string, seen map[string]*store.Device) (*store.Device, bool) {
	if agentID == "" {
		slog.Warn("data-plane message without agent id, dropping")
		return nil, false
	}
	if device, ok := seen[agentID]; ok {
		s.registry.Touch(agentID)
		return device, true
	}

	device, err := s.store.GetDeviceByAgentID(ctx, agentID)
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			slog.Warn("data-plane message for unknown agent, dropping", "agent_id", agentID)
		} else {
			slog.Error("device lookup failed", "agent_id", agentID, "error", err)
		}
		return nil, false
	}

	seen[agentID] = device
	s.registry.Register(agentID, registry.ChannelData)
	s.persistDataPlane(ctx, device.ID, true)
	return device, true
}

func (s *Server) persistDataPlane(ctx context.Context, deviceID uuid.UUID, connected bool) {
	if err := s.store.UpdateDeviceDataPlaneStatus(ctx, deviceID, connected); err != nil {
		slog.Error("failed to persist data-plane status",
			"device_id", deviceID, "connected", connected, "error", err)
	}
}

// clearDataPlane undoes the channel bookkeeping when a stream ends, cleanly
// or not. Persistence failures are logged, not retried.
func (s *Server) clearDataPlane(agentID string, deviceID uuid.UUID) {
	s.registry.Unregister(agentID, registry.ChannelData)

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	s.persistDataPlane(ctx, deviceID, false)
}

func normalizeMetrics(deviceID uuid.UUID, msg *proto.Metrics) *store.MetricsSample {
	ts := time.Unix(msg.Timestamp, 0).UTC()
	if msg.Timestamp == 0 {
		ts = time.Now().UTC()
	}
	return &store.MetricsSample{
		DeviceID:        deviceID,
		Timestamp:       ts,
		CPUPercent:      msg.CpuPercent,
		MemoryPercent:   msg.MemoryPercent,
		MemoryUsed:      parseCounter(msg.MemoryUsed),
		MemoryAvailable: parseCounter(msg.MemoryAvailable),
		DiskPercent:     msg.DiskPercent,
		DiskUsed:        parseCounter(msg.DiskUsed),
		DiskTotal:       parseCounter(msg.DiskTotal),
		NetworkRxBytes:  parseCounter(msg.NetworkRxBytes),
		NetworkTxBytes:  parseCounter(msg.NetworkTxBytes),
		ProcessCount:    msg.ProcessCount,
		Uptime:          parseCounter(msg.Uptime),
	}
}

// UploadInventory persists a full system description and software list in
// one shot.
func (s *Server) UploadInventory(ctx context.Context, inv *proto.InventoryData) (*proto.UploadResponse, error) {
	if inv.AgentId == "" {
		return &proto.UploadResponse{Success: false, Error: "Missing agent_id"}, nil
	}

	device, err := s.store.GetDeviceByAgentID(ctx, inv.AgentId)
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			return &proto.UploadResponse{Success: false, Error: "Device not found"}, nil
		}
		return nil, err
	}

	if inv.SystemInfo != nil {
		info := &store.SystemInfo{
			Hostname:     inv.SystemInfo.Hostname,
			OS:           inv.SystemInfo.Os,
			OSVersion:    inv.SystemInfo.OsVersion,
			Platform:     inv.SystemInfo.Platform,
			Architecture: inv.SystemInfo.Architecture,
			CPUModel:     inv.SystemInfo.CpuModel,
			CPUCores:     inv.SystemInfo.CpuCores,
			CPUThreads:   inv.SystemInfo.CpuThreads,
			CPUSpeed:     inv.SystemInfo.CpuSpeed,
			TotalMemory:  parseCounter(inv.SystemInfo.TotalMemory),
			SerialNumber: inv.SystemInfo.SerialNumber,
			Manufacturer: inv.SystemInfo.Manufacturer,
			Model:        inv.SystemInfo.Model,
		}
		if err := s.store.UpdateDeviceSystemInfo(ctx, device.ID, info); err != nil {
			slog.Error("failed to persist system info", "agent_id", inv.AgentId, "error", err)
			return &proto.UploadResponse{Success: false, Error: "Failed to store system info"}, nil
		}
	}

	software := make([]store.InstalledSoftware, 0, len(inv.Software))
	for _, sw := range inv.Software {
		software = append(software, store.InstalledSoftware{
			Name:        sw.Name,
			Version:     sw.Version,
			Publisher:   sw.Publisher,
			InstallDate: sw.InstallDate,
		})
	}
	if err := s.store.StoreSoftwareInventory(ctx, device.ID, software); err != nil {
		slog.Error("failed to persist software inventory", "agent_id", inv.AgentId, "error", err)
		return &proto.UploadResponse{Success: false, Error: "Failed to store software inventory"}, nil
	}

	s.notifier.Publish(notify.EventInventoryUpdated, map[string]any{
		"deviceId":      device.ID,
		"agentId":       inv.AgentId,
		"softwareCount": len(software),
	})
	return &proto.UploadResponse{Success: true}, nil
}

// StreamLogs ingests batches of host log entries. Individual persistence
// failures are logged host-side only; the agent always sees success.
func (s *Server) StreamLogs(stream proto.DataPlaneService_StreamLogsServer) error {
	ctx := stream.Context()

	var received int32
	for {
		batch, err := stream.Recv()
		if err == io.EOF {
			return stream.SendAndClose(&proto.StreamSummary{Success: true, ReceivedCount: received})
		}
		if err != nil {
			if isCancelled(err) {
				slog.Info("log stream closed by agent", "received", received)
				return nil
			}
			slog.Error("log stream failed", "received", received, "error", err)
			return err
		}

		device, err := s.store.GetDeviceByAgentID(ctx, batch.AgentId)
		if err != nil {
			if errors.Is(err, store.ErrDeviceNotFound) {
				slog.Warn("log batch for unknown agent, dropping",
					"agent_id", batch.AgentId, "entries", len(batch.Entries))
			} else {
				slog.Error("device lookup failed, dropping log batch",
					"agent_id", batch.AgentId, "entries", len(batch.Entries), "error", err)
			}
			continue
		}

		stored := 0
		for _, e := range batch.Entries {
			entry := &store.LogEntry{
				DeviceID:  device.ID,
				Timestamp: time.Unix(e.Timestamp, 0).UTC(),
				Level:     e.Level,
				Source:    e.Source,
				Message:   e.Message,
			}
			if err := s.store.StoreLogEntry(ctx, entry); err != nil {
				slog.Error("failed to store log entry", "agent_id", batch.AgentId, "error", err)
				continue
			}
			stored++
		}
		received += int32(stored)

		s.notifier.Publish(notify.EventLogsNew, map[string]any{
			"deviceId": device.ID,
			"agentId":  batch.AgentId,
			"count":    stored,
		})
	}
}

// StreamFileContent reassembles one chunked file transfer. The accumulator
// is scoped to this call; a cancelled or failed stream discards it and no
// completion event fires.
func (s *Server) StreamFileContent(stream proto.DataPlaneService_StreamFileContentServer) error {
	var (
		acc       *accumulator
		agentID   string
		requestID string
		filePath  string
	)

	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			if acc != nil {
				acc.cancel()
			}
			return stream.SendAndClose(&proto.StreamSummary{Success: true})
		}
		if err != nil {
			if acc != nil {
				acc.cancel()
			}
			if isCancelled(err) {
				slog.Info("file transfer cancelled by agent", "request_id", requestID, "path", filePath)
				return nil
			}
			slog.Error("file transfer failed", "request_id", requestID, "path", filePath, "error", err)
			return err
		}

		if acc == nil {
			acc = newAccumulator(chunk.TotalSize)
			agentID = chunk.AgentId
			requestID = chunk.RequestId
			filePath = chunk.FilePath
		}

		if err := acc.append(chunk.Data); err != nil {
			slog.Error("file transfer rejected", "request_id", requestID, "path", filePath, "error", err)
			if errors.Is(err, errAccumulatorDone) {
				return status.Errorf(codes.InvalidArgument, "chunk after final chunk: %v", err)
			}
			return status.Errorf(codes.ResourceExhausted, "transfer too large: %v", err)
		}

		received, total, percentage := acc.progress()
		s.notifier.Publish(notify.EventFilesProgress, map[string]any{
			"agentId":          agentID,
			"requestId":        requestID,
			"filePath":         filePath,
			"bytesTransferred": received,
			"totalBytes":       total,
			"percentage":       percentage,
		})

		if chunk.IsLast {
			payload := acc.assemble()
			s.notifier.Publish(notify.EventFilesComplete, map[string]any{
				"agentId":   agentID,
				"requestId": requestID,
				"filePath":  filePath,
				"size":      len(payload),
				"data":      base64.StdEncoding.EncodeToString(payload),
			})
		}
	}
}

// UploadBulkData is the generic chunked upload, keyed by data type rather
// than a file path. The assembled payload routes to a type-specific handler;
// unknown types are dropped without failing the call.
func (s *Server) UploadBulkData(stream proto.DataPlaneService_UploadBulkDataServer) error {
	ctx := stream.Context()

	var (
		acc       *accumulator
		agentID   string
		requestID string
		dataType  string
	)

	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			if acc != nil {
				acc.cancel()
			}
			return stream.SendAndClose(&proto.StreamSummary{Success: true})
		}
		if err != nil {
			if acc != nil {
				acc.cancel()
			}
			if isCancelled(err) {
				slog.Info("bulk upload cancelled by agent", "request_id", requestID, "data_type", dataType)
				return nil
			}
			slog.Error("bulk upload failed", "request_id", requestID, "data_type", dataType, "error", err)
			return err
		}

		if acc == nil {
			acc = newAccumulator(chunk.TotalSize)
			agentID = chunk.AgentId
			requestID = chunk.RequestId
			dataType = chunk.DataType
		}

		if err := acc.append(chunk.Data); err != nil {
			slog.Error("bulk upload rejected", "request_id", requestID, "data_type", dataType, "error", err)
			if errors.Is(err, errAccumulatorDone) {
				return status.Errorf(codes.InvalidArgument, "chunk after final chunk: %v", err)
			}
			return status.Errorf(codes.ResourceExhausted, "upload too large: %v", err)
		}

		received, total, percentage := acc.progress()
		s.notifier.Publish(notify.EventBulkProgress, map[string]any{
			"agentId":          agentID,
			"requestId":        requestID,
			"dataType":         dataType,
			"bytesTransferred": received,
			"totalBytes":       total,
			"percentage":       percentage,
		})

		if chunk.IsLast {
			payload := acc.assemble()

			device, err := s.store.GetDeviceByAgentID(ctx, agentID)
			if err != nil {
				slog.Warn("bulk upload for unknown agent, dropping payload",
					"agent_id", agentID, "data_type", dataType, "size", len(payload))
			} else {
				s.routeBulkPayload(ctx, device.ID, requestID, dataType, payload)
			}

			s.notifier.Publish(notify.EventBulkComplete, map[string]any{
				"agentId":   agentID,
				"requestId": requestID,
				"dataType":  dataType,
				"size":      len(payload),
			})
		}
	}
}
