package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wardenhq/warden-server/internal/api/http/dto"
	"github.com/wardenhq/warden-server/internal/controlplane"
)

type FilesHandler struct {
	cp *controlplane.Server
}

func NewFilesHandler(cp *controlplane.Server) *FilesHandler {
	return &FilesHandler{cp: cp}
}

// Drives lists the device's mounted volumes.
// GET /devices/:device_id/drives
func (h *FilesHandler) Drives(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	payload, err := h.cp.ListDrives(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// List returns a directory listing from the device.
// GET /devices/:device_id/files?path=
func (h *FilesHandler) List(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	payload, err := h.cp.ListFiles(c.Request.Context(), id, path)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// Scan asks the device for recursive size information under a path. Progress
// arrives over the dashboard channel; this returns the final result.
// POST /devices/:device_id/files/scan
func (h *FilesHandler) Scan(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	var req dto.ScanDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := h.cp.ScanDirectory(c.Request.Context(), id, req.Path, req.MaxDepth)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// Download fetches a file's content from the device.
// GET /devices/:device_id/files/download?path=
func (h *FilesHandler) Download(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	data, err := h.cp.DownloadFile(c.Request.Context(), id, path)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// Upload writes content to a path on the device.
// POST /devices/:device_id/files/upload
func (h *FilesHandler) Upload(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	var req dto.UploadFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cp.UploadFile(c.Request.Context(), id, req.Path, req.Data); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": req.Path, "size": len(req.Data)})
}
