package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	baseURL      = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel = "gemini-1.5-flash"
	maxTokens    = 1024
)

// Client defines the AI operations the application uses.
type Client interface {
	Chat(ctx context.Context, state ConversationState, input string) (ConversationState, string, error)
	DraftWhatsAppMessage(ctx context.Context, topic, details string) (string, error)
	ExtractRates(ctx context.Context, text string) ([]RateCandidate, error)
}

// ConversationState holds the rolling chat history for one user session.
type ConversationState struct {
	History []Message `json:"history,omitempty"`
}

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RateCandidate is one broiler rate the extractor found in free text.
type RateCandidate struct {
	Date      string  `json:"date,omitempty"`
	State     string  `json:"state"`
	District  string  `json:"district,omitempty"`
	RatePerKg float64 `json:"rate_per_kg"`
}

type geminiClient struct {
	httpClient *resty.Client
	model      string
	apiKey     string
}

// NewClient creates a configured Gemini client. An empty model selects the default.
func NewClient(apiKey, model string) Client {
	if model == "" {
		model = defaultModel
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("content-type", "application/json").
		SetTimeout(20 * time.Second)

	return &geminiClient{httpClient: client, model: model, apiKey: apiKey}
}

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const assistantSystemPrompt = `You are Poultry Mitra, an assistant for Indian poultry farmers and dealers.
Answer questions about broiler farming: feed, FCR, mortality, vaccination schedules, shed management and market rates.
Be practical and concise. Reply in the language the farmer writes in (Hindi or English).
If asked about disease symptoms, give first-step guidance and always recommend consulting a veterinarian.`

// Chat runs one assistant turn, threading the accumulated history so the
// model keeps context. The caller's history slice is never appended into;
// concurrent turns for the same sender may hold the same backing array.
func (c *geminiClient) Chat(ctx context.Context, state ConversationState, input string) (ConversationState, string, error) {
	history := make([]Message, 0, len(state.History)+2)
	history = append(history, state.History...)
	history = append(history, Message{Role: "user", Content: input})

	reply, err := c.generate(ctx, assistantSystemPrompt, history)
	if err != nil {
		return state, "", err
	}

	newState := ConversationState{
		History: append(history, Message{Role: "model", Content: reply}),
	}
	return newState, reply, nil
}

// DraftWhatsAppMessage produces a short WhatsApp-ready announcement draft.
func (c *geminiClient) DraftWhatsAppMessage(ctx context.Context, topic, details string) (string, error) {
	system := `You draft short WhatsApp messages for a poultry business.
Keep it under 600 characters, friendly, with plain language. No markdown, emoji are fine.`

	prompt := fmt.Sprintf("Topic: %s\nDetails: %s\nWrite the message.", topic, details)
	return c.generate(ctx, system, []Message{{Role: "user", Content: prompt}})
}

// ExtractRates pulls broiler rate quotations out of pasted bulletin text.
// The model is forced to JSON; fenced or malformed output falls back to an error.
func (c *geminiClient) ExtractRates(ctx context.Context, text string) ([]RateCandidate, error) {
	system := `You extract broiler market rates from Indian mandi rate bulletins.
Output ONLY a JSON array, no prose, no markdown fences. Each element:
{"date": "YYYY-MM-DD" or "", "state": string, "district": string or "", "rate_per_kg": number}
Rates are rupees per kg live weight. Skip lines without a usable rate.`

	raw, err := c.generate(ctx, system, []Message{{Role: "user", Content: text}})
	if err != nil {
		return nil, err
	}

	cleaned := stripFences(raw)

	var candidates []RateCandidate
	if err := json.Unmarshal([]byte(cleaned), &candidates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rate extraction: %w. Response was: %s", err, cleaned)
	}
	return candidates, nil
}

func (c *geminiClient) generate(ctx context.Context, system string, history []Message) (string, error) {
	contents := make([]content, 0, len(history))
	for _, msg := range history {
		contents = append(contents, content{Role: msg.Role, Parts: []part{{Text: msg.Content}}})
	}

	reqBody := generateRequest{
		Contents:         contents,
		GenerationConfig: generationConfig{MaxOutputTokens: maxTokens},
	}
	if system != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	var respBody generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))

	if err != nil {
		return "", fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini api error: %s", resp.String())
	}
	if respBody.Error != nil {
		return "", fmt.Errorf("gemini api error: code=%d, message=%s", respBody.Error.Code, respBody.Error.Message)
	}
	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return strings.TrimSpace(respBody.Candidates[0].Content.Parts[0].Text), nil
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
