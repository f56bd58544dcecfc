package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wardenhq/warden-server/internal/api/http/dto"
	"github.com/wardenhq/warden-server/internal/certs"
)

type CertsHandler struct {
	service     *certs.Service
	distributor *certs.Distributor
}

func NewCertsHandler(service *certs.Service, distributor *certs.Distributor) *CertsHandler {
	return &CertsHandler{service: service, distributor: distributor}
}

// Distribute pushes the server certificate to every connected agent,
// optionally rotating it first. Per-agent failures never fail the round;
// they show up in the tally.
// POST /certificates/distribute
func (h *CertsHandler) Distribute(c *gin.Context) {
	var req dto.DistributeCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		certPEM string
		err     error
	)
	if req.Rotate {
		certPEM, err = h.service.Rotate()
	} else {
		certPEM, err = h.service.ServerCertPEM()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tally := h.distributor.Distribute(c.Request.Context(), certPEM)
	c.JSON(http.StatusOK, tally)
}
