package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/rates"
	"github.com/DKUMARGUPTA/poultrymitra-backend/pkg/clients/gemini"
)

const rateDateLayout = "2006-01-02"

// AIHandler exposes the Gemini-backed tools: WhatsApp draft generation and
// rate extraction from pasted bulletin text.
type AIHandler struct {
	ai     gemini.Client
	rates  *rates.Service
	logger *zap.Logger
}

// NewAIHandler constructs the HTTP handler adapter. A nil AI client makes
// every endpoint answer 503.
func NewAIHandler(ai gemini.Client, ratesSvc *rates.Service, logger *zap.Logger) *AIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIHandler{ai: ai, rates: ratesSvc, logger: logger}
}

type draftRequest struct {
	Topic   string `json:"topic" binding:"required"`
	Details string `json:"details"`
}

type extractRatesRequest struct {
	Text string `json:"text" binding:"required"`
	Save bool   `json:"save"`
}

// Draft generates a WhatsApp-ready announcement message.
func (h *AIHandler) Draft(c *gin.Context) {
	if h.ai == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai tools not configured"})
		return
	}

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	draft, err := h.ai.DraftWhatsAppMessage(c.Request.Context(), req.Topic, req.Details)
	if err != nil {
		h.logger.Error("draft generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "draft generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// ExtractRates pulls rate quotations out of pasted text, optionally saving them.
func (h *AIHandler) ExtractRates(c *gin.Context) {
	if h.ai == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai tools not configured"})
		return
	}

	var req extractRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	candidates, err := h.ai.ExtractRates(c.Request.Context(), req.Text)
	if err != nil {
		h.logger.Error("rate extraction failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "rate extraction failed"})
		return
	}

	extracted := make([]models.MarketRate, 0, len(candidates))
	for _, cand := range candidates {
		rate := models.MarketRate{
			State:     cand.State,
			District:  cand.District,
			RatePerKg: cand.RatePerKg,
		}
		if cand.Date != "" {
			if parsed, err := time.Parse(rateDateLayout, cand.Date); err == nil {
				rate.Date = parsed
			}
		}
		extracted = append(extracted, rate)
	}

	saved := 0
	if req.Save && h.rates != nil {
		saved, err = h.rates.SaveExtracted(c.Request.Context(), extracted, "ai-extract")
		if err != nil {
			h.logger.Error("saving extracted rates failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save extracted rates"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"rates": extracted, "saved": saved})
}
