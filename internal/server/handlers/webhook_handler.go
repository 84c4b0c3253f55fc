package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
	service "github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/whatsapp"
)

// WebhookHandler exposes the Meta WhatsApp surface: the subscription
// handshake, inbound event delivery, and an operator endpoint for pushing
// messages to farmers.
type WebhookHandler struct {
	messaging service.MessagingService
	logger    *zap.Logger
}

func NewWebhookHandler(messaging service.MessagingService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{messaging: messaging, logger: logger}
}

// Verify answers Meta's GET handshake by echoing hub.challenge once the
// verify token checks out.
func (h *WebhookHandler) Verify(c *gin.Context) {
	challenge, err := h.messaging.VerifyWebhookToken(
		c.Query("hub.mode"),
		c.Query("hub.verify_token"),
		c.Query("hub.challenge"),
	)
	if err != nil {
		h.logger.Warn("webhook handshake rejected", zap.Error(err), zap.String("client_ip", c.ClientIP()))
		c.String(http.StatusForbidden, "verification failed")
		return
	}

	c.String(http.StatusOK, challenge)
}

// Inbound consumes Meta's event delivery. Malformed JSON gets a 400;
// processing failures are logged but still acknowledged with 200, because a
// non-2xx makes Meta re-deliver the same event and the farmer would receive
// duplicate replies.
func (h *WebhookHandler) Inbound(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("undecodable webhook event", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.messaging.HandleWebhook(c.Request.Context(), payload); err != nil {
		h.logger.Error("webhook event processing failed", zap.Error(err))
	}

	c.Status(http.StatusOK)
}

// Push lets operators send a message to a farmer or group, e.g. an ad-hoc
// rate alert outside the scheduled broadcast.
func (h *WebhookHandler) Push(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid push payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "to and message are required"})
		return
	}

	if err := h.messaging.SendOutbound(c.Request.Context(), req); err != nil {
		h.logger.Error("push delivery failed", zap.Error(err), zap.String("to", req.To))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "sent", "to": req.To})
}
