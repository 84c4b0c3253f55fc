package whatsapp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/config"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
	"github.com/DKUMARGUPTA/poultrymitra-backend/pkg/clients/gemini"
	client "github.com/DKUMARGUPTA/poultrymitra-backend/pkg/clients/whatsapp"
)

type fakeClient struct {
	sent []client.SendTextMessageRequest
}

func (f *fakeClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	f.sent = append(f.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

type fakeDispatcher struct {
	lastCmd models.Command
	reply   string
	err     error
}

func (f *fakeDispatcher) HandleCommand(_ context.Context, cmd models.Command, _ string) (string, error) {
	f.lastCmd = cmd
	return f.reply, f.err
}

type fakeAI struct {
	reply string
}

func (f *fakeAI) Chat(_ context.Context, state gemini.ConversationState, input string) (gemini.ConversationState, string, error) {
	state.History = append(state.History, gemini.Message{Role: "user", Content: input})
	return state, f.reply, nil
}

func (f *fakeAI) DraftWhatsAppMessage(context.Context, string, string) (string, error) {
	return f.reply, nil
}

func (f *fakeAI) ExtractRates(context.Context, string) ([]gemini.RateCandidate, error) {
	return nil, nil
}

func textPayload(from, body string) models.WebhookPayload {
	return models.WebhookPayload{
		Entry: []models.WebhookEntry{{
			Changes: []models.WebhookChange{{
				Value: models.WebhookValue{
					Messages: []models.InboundMessage{{
						From: from,
						ID:   "msg-1",
						Type: "text",
						Text: &models.TextContent{Body: body},
					}},
				},
			}},
		}},
	}
}

func TestVerifyWebhookToken(t *testing.T) {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{VerifyToken: "secret"}, &fakeClient{}, &fakeDispatcher{}, nil, nil)

	resp, err := svc.VerifyWebhookToken("subscribe", "secret", "challenge-123")
	require.NoError(t, err)
	assert.Equal(t, "challenge-123", resp)

	_, err = svc.VerifyWebhookToken("subscribe", "wrong", "challenge-123")
	assert.Error(t, err)

	_, err = svc.VerifyWebhookToken("unsubscribe", "secret", "challenge-123")
	assert.Error(t, err)

	_, err = svc.VerifyWebhookToken("", "", "challenge-123")
	assert.Error(t, err)
}

func TestHandleWebhookRoutesCommands(t *testing.T) {
	wc := &fakeClient{}
	dispatcher := &fakeDispatcher{reply: "Mortality logged."}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wc, dispatcher, nil, nil)

	err := svc.HandleWebhook(context.Background(), textPayload("919999000001", "/mortality 3"))
	require.NoError(t, err)

	assert.Equal(t, models.CommandMortality, dispatcher.lastCmd.Type)
	require.Len(t, wc.sent, 1)
	assert.Equal(t, "919999000001", wc.sent[0].To)
	assert.Equal(t, "Mortality logged.", wc.sent[0].Body)
}

func TestHandleWebhookFreeTextGoesToAssistant(t *testing.T) {
	wc := &fakeClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wc, &fakeDispatcher{}, &fakeAI{reply: "Keep the brooder at 32°C."}, nil)

	err := svc.HandleWebhook(context.Background(), textPayload("919999000001", "what temperature for chicks?"))
	require.NoError(t, err)

	require.Len(t, wc.sent, 1)
	assert.Equal(t, "Keep the brooder at 32°C.", wc.sent[0].Body)

	// The session keeps history across turns.
	state := svc.sessions.GetSession("919999000001")
	assert.NotEmpty(t, state.History)
}

func TestHandleWebhookFreeTextWithoutAI(t *testing.T) {
	wc := &fakeClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wc, &fakeDispatcher{}, nil, nil)

	err := svc.HandleWebhook(context.Background(), textPayload("sender", "hello"))
	require.NoError(t, err)

	require.Len(t, wc.sent, 1)
	assert.Contains(t, wc.sent[0].Body, "Commands:")
}

func TestHandleWebhookEmptyPayload(t *testing.T) {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, &fakeClient{}, &fakeDispatcher{}, nil, nil)

	assert.NoError(t, svc.HandleWebhook(context.Background(), models.WebhookPayload{}))
}
