package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/repository/mongodb"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/calculator"
)

// CalculatorHandler serves the feed-economics calculator in both manual and
// batch auto-fill modes. Manual mode needs no account or batch context.
type CalculatorHandler struct {
	svc    *calculator.Service
	logger *zap.Logger
}

// NewCalculatorHandler constructs the HTTP handler adapter.
func NewCalculatorHandler(svc *calculator.Service, logger *zap.Logger) *CalculatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorHandler{svc: svc, logger: logger}
}

// Pointer fields so a literal 0 still satisfies "required".
type manualCalculationRequest struct {
	InitialChickCount  *float64 `json:"initialChickCount" binding:"required,gte=0"`
	FinalChickCount    *float64 `json:"finalChickCount" binding:"required,gte=0"`
	FeedCostPerBag     *float64 `json:"feedCostPerBag" binding:"required,gte=0"`
	BagsOfFeedUsed     *float64 `json:"bagsOfFeedUsed" binding:"required,gte=0"`
	AverageChickWeight *float64 `json:"averageChickWeight" binding:"required,gte=0"`
}

type autoFillRequest struct {
	BatchID        string  `json:"batchId" binding:"required"`
	FeedCostPerBag float64 `json:"feedCostPerBag" binding:"gte=0"`
	Session        string  `json:"session"`
	Seq            uint64  `json:"seq"`
}

type calculationResponse struct {
	Inputs models.CalculationInputs `json:"inputs"`
	Result models.CalculationResult `json:"result"`
}

// Calculate runs the engine on user-typed inputs.
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	var req manualCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid calculation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields must be non-negative numbers"})
		return
	}

	inputs := models.CalculationInputs{
		InitialChickCount:  *req.InitialChickCount,
		FinalChickCount:    *req.FinalChickCount,
		FeedCostPerBag:     *req.FeedCostPerBag,
		BagsOfFeedUsed:     *req.BagsOfFeedUsed,
		AverageChickWeight: *req.AverageChickWeight,
	}

	result, err := h.svc.Manual(inputs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, calculationResponse{Inputs: inputs, Result: result})
}

// AutoFill derives inputs from a batch's records and runs the engine.
func (h *CalculatorHandler) AutoFill(c *gin.Context) {
	var req autoFillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid auto-fill payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	inputs, result, err := h.svc.CalculateForBatch(c.Request.Context(), req.BatchID, req.FeedCostPerBag, req.Session, req.Seq)
	if err != nil {
		h.writeBatchError(c, req.BatchID, err)
		return
	}

	c.JSON(http.StatusOK, calculationResponse{Inputs: inputs, Result: result})
}

// Metrics is the batch-scoped variant of AutoFill: derivation and parameters
// come from the path and query string so farm dashboards can link to it.
func (h *CalculatorHandler) Metrics(c *gin.Context) {
	batchID := c.Param("id")

	feedCostPerBag, err := strconv.ParseFloat(c.DefaultQuery("feedCostPerBag", "0"), 64)
	if err != nil || feedCostPerBag < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedCostPerBag must be a non-negative number"})
		return
	}

	seq, err := strconv.ParseUint(c.DefaultQuery("seq", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seq must be a non-negative integer"})
		return
	}

	inputs, result, err := h.svc.CalculateForBatch(c.Request.Context(), batchID, feedCostPerBag, c.Query("session"), seq)
	if err != nil {
		h.writeBatchError(c, batchID, err)
		return
	}

	c.JSON(http.StatusOK, calculationResponse{Inputs: inputs, Result: result})
}

func (h *CalculatorHandler) writeBatchError(c *gin.Context, batchID string, err error) {
	switch {
	case errors.Is(err, calculator.ErrStaleRequest):
		c.JSON(http.StatusConflict, gin.H{"error": "stale request", "stale": true})
	case errors.Is(err, calculator.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, mongodb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
	default:
		h.logger.Error("batch metrics failed", zap.Error(err), zap.String("batch_id", batchID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute batch metrics"})
	}
}
