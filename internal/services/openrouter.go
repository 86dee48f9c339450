package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ghstx9/geminiwrapper/internal/models"
)

const DefaultOpenRouterURL = "https://openrouter.ai/api/v1"

type OpenRouterConfig struct {
	APIKey   string
	BaseURL  string
	SiteURL  string // sent as HTTP-Referer for attribution
	SiteName string // sent as X-Title
	Timeout  time.Duration
}

// OpenRouterBackend talks to the OpenAI-compatible multi-model gateway.
type OpenRouterBackend struct {
	client *openai.Client
}

func NewOpenRouterBackend(cfg OpenRouterConfig) *OpenRouterBackend {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = DefaultOpenRouterURL
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &attributionTransport{
			Base:     http.DefaultTransport,
			SiteURL:  cfg.SiteURL,
			SiteName: cfg.SiteName,
		},
		Timeout: cfg.Timeout,
	}

	return &OpenRouterBackend{client: openai.NewClientWithConfig(clientConfig)}
}

func (b *OpenRouterBackend) Chat(ctx context.Context, in ChatInput) (string, error) {
	user, err := gatewayUserMessage(in.Message, in.Attachment)
	if err != nil {
		return "", err
	}

	messages := append(toGatewayMessages(in.History), user)

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    in.ModelID,
		Messages: messages,
	})
	if err != nil {
		return "", &UpstreamError{Backend: "openrouter", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Backend: "openrouter", Err: errors.New("no choices in response")}
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return emptyReplyNotice, nil
	}
	return text, nil
}

// toGatewayMessages re-maps Gemini-shaped history into {role, content} pairs.
// Empty turns are skipped, as they are for Gemini.
func toGatewayMessages(items []models.HistoryItem) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(items)+1)
	for _, item := range items {
		text := item.Text()
		if text == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		if item.Role == models.RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: text})
	}
	return out
}

func gatewayUserMessage(message string, att *DecodedAttachment) (openai.ChatCompletionMessage, error) {
	if att == nil {
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message}, nil
	}

	if att.IsImage() {
		parts := make([]openai.ChatMessagePart, 0, 2)
		if strings.TrimSpace(message) != "" {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: message,
			})
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    att.DataURL(),
				Detail: openai.ImageURLDetailAuto,
			},
		})
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, MultiContent: parts}, nil
	}

	text, err := ExtractAttachmentText(att)
	if err != nil {
		return openai.ChatCompletionMessage{}, err
	}

	var b strings.Builder
	b.WriteString(message)
	if message != "" {
		b.WriteString("\n\n")
	}
	b.WriteString("---ATTACHMENT: ")
	b.WriteString(att.Name)
	b.WriteString("---\n")
	b.WriteString(text)
	b.WriteString("\n---END ATTACHMENT---")

	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: b.String()}, nil
}

// attributionTransport adds the OpenRouter app attribution headers.
type attributionTransport struct {
	Base     http.RoundTripper
	SiteURL  string
	SiteName string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	if t.SiteURL != "" {
		reqCopy.Header.Set("HTTP-Referer", t.SiteURL)
	}
	if t.SiteName != "" {
		reqCopy.Header.Set("X-Title", t.SiteName)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(reqCopy)
}
