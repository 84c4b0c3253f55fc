package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/repository/mongodb"
)

// BatchHandler exposes batch, daily-entry and ledger CRUD.
type BatchHandler struct {
	repo   mongodb.Repository
	logger *zap.Logger
}

// NewBatchHandler constructs the HTTP handler adapter.
func NewBatchHandler(repo mongodb.Repository, logger *zap.Logger) *BatchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchHandler{repo: repo, logger: logger}
}

type createBatchRequest struct {
	FarmerID         string    `json:"farmerId" binding:"required"`
	Name             string    `json:"name" binding:"required"`
	StartDate        time.Time `json:"startDate" binding:"required"`
	InitialBirdCount *int      `json:"initialBirdCount" binding:"required,gte=0"`
}

type addEntryRequest struct {
	Date           time.Time `json:"date" binding:"required"`
	Mortality      *int      `json:"mortality" binding:"required,gte=0"`
	FeedConsumedKg *float64  `json:"feedConsumedInKg" binding:"required,gte=0"`
	AverageWeightG *float64  `json:"averageWeightInGrams" binding:"required,gte=0"`
}

type addTransactionRequest struct {
	Date          time.Time              `json:"date" binding:"required"`
	Kind          models.TransactionKind `json:"kind" binding:"required,oneof=sale expense payment"`
	Description   string                 `json:"description"`
	QuantitySold  int                    `json:"quantitySold" binding:"gte=0"`
	TotalWeightKg float64                `json:"totalWeight" binding:"gte=0"`
	Amount        float64                `json:"amount"`
}

// Create registers a new batch.
func (h *BatchHandler) Create(c *gin.Context) {
	var req createBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch := models.Batch{
		ID:               uuid.NewString(),
		FarmerID:         req.FarmerID,
		Name:             req.Name,
		StartDate:        req.StartDate,
		InitialBirdCount: *req.InitialBirdCount,
		CreatedAt:        time.Now().UTC(),
	}

	if err := h.repo.CreateBatch(c.Request.Context(), batch); err != nil {
		h.logger.Error("failed creating batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create batch"})
		return
	}

	c.JSON(http.StatusCreated, batch)
}

// List returns the batches of the farmer given by the farmerId query param.
func (h *BatchHandler) List(c *gin.Context) {
	farmerID := c.Query("farmerId")
	if farmerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "farmerId query parameter required"})
		return
	}

	batches, err := h.repo.ListBatchesByFarmer(c.Request.Context(), farmerID)
	if err != nil {
		h.logger.Error("failed listing batches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list batches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

// Get returns one batch by ID.
func (h *BatchHandler) Get(c *gin.Context) {
	batch, err := h.repo.GetBatch(c.Request.Context(), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load batch"})
		return
	}

	c.JSON(http.StatusOK, batch)
}

// AddEntry records one day's metrics for a batch.
func (h *BatchHandler) AddEntry(c *gin.Context) {
	var req addEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batchID := c.Param("id")
	if _, err := h.repo.GetBatch(c.Request.Context(), batchID); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		h.logger.Error("failed loading batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load batch"})
		return
	}

	entry := models.DailyEntry{
		ID:             uuid.NewString(),
		BatchID:        batchID,
		Date:           req.Date,
		Mortality:      *req.Mortality,
		FeedConsumedKg: *req.FeedConsumedKg,
		AverageWeightG: *req.AverageWeightG,
	}

	if err := h.repo.AddDailyEntry(c.Request.Context(), entry); err != nil {
		h.logger.Error("failed adding entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListEntries returns a batch's daily entries most-recent-first.
func (h *BatchHandler) ListEntries(c *gin.Context) {
	entries, err := h.repo.ListEntriesByBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed listing entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// AddTransaction appends a ledger entry for a batch.
func (h *BatchHandler) AddTransaction(c *gin.Context) {
	var req addTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid transaction payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batchID := c.Param("id")
	if _, err := h.repo.GetBatch(c.Request.Context(), batchID); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		h.logger.Error("failed loading batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load batch"})
		return
	}

	txn := models.Transaction{
		ID:            uuid.NewString(),
		BatchID:       batchID,
		Date:          req.Date,
		Kind:          req.Kind,
		Description:   req.Description,
		QuantitySold:  req.QuantitySold,
		TotalWeightKg: req.TotalWeightKg,
		Amount:        req.Amount,
	}

	if err := h.repo.AddTransaction(c.Request.Context(), txn); err != nil {
		h.logger.Error("failed adding transaction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add transaction"})
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// ListTransactions returns a batch's ledger.
func (h *BatchHandler) ListTransactions(c *gin.Context) {
	txns, err := h.repo.ListTransactionsByBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed listing transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}
