package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wardenhq/warden-server/internal/api/http/dto"
	"github.com/wardenhq/warden-server/internal/controlplane"
)

type WebRTCHandler struct {
	cp *controlplane.Server
}

func NewWebRTCHandler(cp *controlplane.Server) *WebRTCHandler {
	return &WebRTCHandler{cp: cp}
}

// Start relays an SDP offer to the device and returns its answer.
// POST /devices/:device_id/webrtc
func (h *WebRTCHandler) Start(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	var req dto.WebRTCStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, answer, err := h.cp.StartWebRTC(c.Request.Context(), id, req.Offer)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.WebRTCStartResponse{SessionID: sess.ID, Answer: answer})
}

// Signal relays an ICE candidate or renegotiation blob verbatim.
// POST /sessions/:session_id/webrtc/signal
func (h *WebRTCHandler) Signal(c *gin.Context) {
	var req dto.WebRTCSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cp.SendWebRTCSignal(c.Param("session_id"), req.Signal); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetQuality changes the stream quality preset.
// PUT /sessions/:session_id/webrtc/quality
func (h *WebRTCHandler) SetQuality(c *gin.Context) {
	var req dto.WebRTCQualityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cp.SetWebRTCQuality(c.Param("session_id"), req.Quality); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
