package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wardenhq/warden-server/internal/api/http/dto"
	"github.com/wardenhq/warden-server/internal/controlplane"
	"github.com/wardenhq/warden-server/internal/registry"
	"github.com/wardenhq/warden-server/internal/store"
)

type DevicesHandler struct {
	cp       *controlplane.Server
	store    store.Store
	registry *registry.Registry
}

func NewDevicesHandler(cp *controlplane.Server, st store.Store, reg *registry.Registry) *DevicesHandler {
	return &DevicesHandler{cp: cp, store: st, registry: reg}
}

// Status resolves a device's effective liveness from local connection state
// and the persisted record.
// GET /devices/:device_id/status
func (h *DevicesHandler) Status(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	device, err := h.store.GetDeviceByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	status := h.registry.ResolveStatus(device.AgentID, device.Status, device.LastSeen, device.IsDisabled, time.Now())
	c.JSON(http.StatusOK, dto.DeviceStatusResponse{
		DeviceID: device.ID,
		Status:   string(status),
		LastSeen: device.LastSeen,
	})
}

// ExecuteCommand queues a remote command. The result arrives later over the
// dashboard channel.
// POST /devices/:device_id/commands
func (h *DevicesHandler) ExecuteCommand(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	var req dto.ExecuteCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CommandType == "" {
		req.CommandType = "shell"
	}

	commandID, err := h.cp.ExecuteCommand(c.Request.Context(), id, req.CommandType, req.Command, req.TimeoutSecs)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ExecuteCommandResponse{CommandID: commandID, Status: "queued"})
}

// Ping measures round-trip latency over the control channel.
// POST /devices/:device_id/ping
func (h *DevicesHandler) Ping(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	latency, err := h.cp.Ping(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PingResponse{LatencyMs: latency.Milliseconds()})
}

// Disable marks the device administratively disabled and drains its
// connection.
// POST /devices/:device_id/disable
func (h *DevicesHandler) Disable(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	if err := h.cp.DisableDevice(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	slog.Info("device disabled", "device_id", id, "by", c.GetString("username"))
	c.JSON(http.StatusOK, gin.H{"status": "disabled"})
}

// POST /devices/:device_id/enable
func (h *DevicesHandler) Enable(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	if err := h.cp.EnableDevice(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	slog.Info("device enabled", "device_id", id, "by", c.GetString("username"))
	c.JSON(http.StatusOK, gin.H{"status": "enabled"})
}

// Uninstall orders the agent to remove itself. Requires a live connection.
// POST /devices/:device_id/uninstall
func (h *DevicesHandler) Uninstall(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	if err := h.cp.UninstallDevice(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	slog.Info("device uninstall requested", "device_id", id, "by", c.GetString("username"))
	c.JSON(http.StatusAccepted, gin.H{"status": "uninstalling"})
}

// SetMetricsInterval changes how often the agent reports telemetry.
// PUT /devices/:device_id/metrics-interval
func (h *DevicesHandler) SetMetricsInterval(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	var req dto.MetricsIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cp.SetMetricsInterval(c.Request.Context(), id, req.IntervalSecs); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intervalSecs": req.IntervalSecs})
}
