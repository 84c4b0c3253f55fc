package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/rates"
)

// RatesHandler serves cached broiler market rates and the sheet refresh hook.
type RatesHandler struct {
	svc    *rates.Service
	logger *zap.Logger
}

// NewRatesHandler constructs the HTTP handler adapter.
func NewRatesHandler(svc *rates.Service, logger *zap.Logger) *RatesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatesHandler{svc: svc, logger: logger}
}

// Latest returns the most recent cached rates.
func (h *RatesHandler) Latest(c *gin.Context) {
	result, err := h.svc.Latest(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing rates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": result})
}

// Refresh re-imports the admin rate sheet on demand.
func (h *RatesHandler) Refresh(c *gin.Context) {
	imported, err := h.svc.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Error("rate refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "rate refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
