package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wardenhq/warden-server/internal/controlplane"
	"github.com/wardenhq/warden-server/internal/store"
)

// writeError translates service-layer errors into consistent HTTP results.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrDeviceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
	case errors.Is(err, controlplane.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, controlplane.ErrAgentNotConnected):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Agent is not connected"})
	case errors.Is(err, controlplane.ErrWrongSessionKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Operation not supported for this session"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Agent did not respond in time"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// deviceID parses the :device_id path parameter.
func deviceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("device_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device id"})
		return uuid.Nil, false
	}
	return id, true
}
