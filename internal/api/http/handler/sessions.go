package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wardenhq/warden-server/internal/api/http/dto"
	"github.com/wardenhq/warden-server/internal/controlplane"
)

type SessionsHandler struct {
	cp *controlplane.Server
}

func NewSessionsHandler(cp *controlplane.Server) *SessionsHandler {
	return &SessionsHandler{cp: cp}
}

// StartTerminal opens an interactive shell on the device.
// POST /devices/:device_id/terminal
func (h *SessionsHandler) StartTerminal(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	var req dto.StartTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.cp.StartTerminal(c.Request.Context(), id, req.Cols, req.Rows)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SessionResponse{SessionID: sess.ID, Kind: string(sess.Kind)})
}

// Input forwards keystrokes to a terminal session. Output comes back over
// the dashboard channel.
// POST /sessions/:session_id/input
func (h *SessionsHandler) Input(c *gin.Context) {
	var req dto.TerminalInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cp.TerminalInput(c.Param("session_id"), req.Data); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Resize changes pty dimensions. Terminal sessions only.
// POST /sessions/:session_id/resize
func (h *SessionsHandler) Resize(c *gin.Context) {
	var req dto.TerminalResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cp.ResizeTerminal(c.Param("session_id"), req.Cols, req.Rows); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Close ends a session of any kind.
// DELETE /sessions/:session_id
func (h *SessionsHandler) Close(c *gin.Context) {
	if err := h.cp.CloseSession(c.Param("session_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
