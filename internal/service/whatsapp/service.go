package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/config"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/commands"
	"github.com/DKUMARGUPTA/poultrymitra-backend/pkg/clients/gemini"
	client "github.com/DKUMARGUPTA/poultrymitra-backend/pkg/clients/whatsapp"
)

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

const helpText = "Commands: /mortality N [reason], /feed KG, /weight GRAMS, /sale QTY KG AMOUNT, /expense AMOUNT desc, /rates, /report.\nOr just ask a question."

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
// Slash commands go to the dispatcher; free-form text goes to the AI assistant.
type MetaWhatsAppService struct {
	cfg        config.WhatsAppConfig
	client     client.Client
	dispatcher commands.Dispatcher
	ai         gemini.Client
	sessions   *SessionManager
	logger     *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance. A nil AI client
// disables the assistant; free-form text then gets the help reply.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, dispatcher commands.Dispatcher, ai gemini.Client, logger *zap.Logger) *MetaWhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaWhatsAppService{
		cfg:        cfg,
		client:     client,
		dispatcher: dispatcher,
		ai:         ai,
		sessions:   NewSessionManager(),
		logger:     logger,
	}
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook processes inbound webhook payloads.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	if len(payload.Entry) == 0 {
		return nil
	}

	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) error {
	text := extractMessageText(msg)
	if text == "" {
		return errors.New("empty message body")
	}

	reply := s.buildReply(ctx, msg.From, text)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:   msg.From,
		Body: reply,
	})
	return err
}

func (s *MetaWhatsAppService) buildReply(ctx context.Context, sender, text string) string {
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		cmd := models.ParseCommand(text)

		s.logger.Info("parsed inbound command",
			zap.String("from", sender),
			zap.String("command", string(cmd.Type)),
			zap.Any("args", cmd.Args))

		reply, err := s.dispatcher.HandleCommand(ctx, cmd, sender)
		switch {
		case errors.Is(err, commands.ErrUnsupportedCommand):
			return helpText
		case errors.Is(err, commands.ErrInvalidArguments):
			return "Could not read that. " + helpText
		case errors.Is(err, commands.ErrNoActiveBatch):
			return "No batch found for your number. Create a batch first."
		case err != nil:
			s.logger.Error("command failed", zap.Error(err), zap.String("from", sender))
			return "Something went wrong saving that. Please try again."
		}
		return reply
	}

	if s.ai == nil {
		return helpText
	}

	state := s.sessions.GetSession(sender)
	newState, answer, err := s.ai.Chat(ctx, state, text)
	if err != nil {
		s.logger.Error("assistant chat failed", zap.Error(err), zap.String("from", sender))
		return "The assistant is unavailable right now. " + helpText
	}
	s.sessions.UpdateSession(sender, newState)
	return answer
}

// SendOutbound lets internal operators push quick notifications via HTTP.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	return err
}

func extractMessageText(msg models.InboundMessage) string {
	if msg.Text != nil {
		return msg.Text.Body
	}

	if msg.Interactive != nil {
		if msg.Interactive.ButtonReply != nil {
			return msg.Interactive.ButtonReply.ID
		}
		if msg.Interactive.ListReply != nil {
			return msg.Interactive.ListReply.ID
		}
	}

	return ""
}
