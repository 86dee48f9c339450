package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ghstx9/geminiwrapper/internal/models"
)

// SafetyBlockedNotice is returned in place of a reply the safety filter withheld.
const SafetyBlockedNotice = "I can't help with that request because it was flagged by the content safety filter."

const emptyReplyNotice = "The model returned an empty response. Please try rephrasing your message."

// ChatInput is one relay call as seen by a backend.
type ChatInput struct {
	ModelID    string
	Message    string
	History    []models.HistoryItem
	Attachment *DecodedAttachment
}

// Backend is a provider that can answer a chat turn.
type Backend interface {
	Chat(ctx context.Context, in ChatInput) (string, error)
}

type GeminiBackend struct {
	client *genai.Client
}

func NewGeminiBackend(ctx context.Context, apiKey string) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiBackend{client: client}, nil
}

func (b *GeminiBackend) Close() error {
	return b.client.Close()
}

// Chat replays the history into a chat session and sends the new turn.
func (b *GeminiBackend) Chat(ctx context.Context, in ChatInput) (string, error) {
	model := b.client.GenerativeModel(strings.TrimPrefix(in.ModelID, "models/"))
	model.SafetySettings = SafetySettings()

	cs := model.StartChat()
	cs.History = toGeminiHistory(in.History)

	resp, err := cs.SendMessage(ctx, messageParts(in)...)
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			log.Printf("Gemini blocked response for %s: %v", in.ModelID, blocked)
			return SafetyBlockedNotice, nil
		}
		return "", &UpstreamError{Backend: "gemini", Err: err}
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		log.Println("WARNING: Gemini returned empty text. Using fallback.")
		return emptyReplyNotice, nil
	}
	return text, nil
}

// SafetySettings blocks medium-and-above severity in the four harm categories.
func SafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockMediumAndAbove,
		})
	}
	return settings
}

func toGeminiHistory(items []models.HistoryItem) []*genai.Content {
	history := make([]*genai.Content, 0, len(items))
	for _, item := range items {
		parts := make([]genai.Part, 0, len(item.Parts))
		for _, p := range item.Parts {
			if p.Text != "" {
				parts = append(parts, genai.Text(p.Text))
			}
		}
		if len(parts) == 0 {
			continue
		}

		role := models.RoleUser
		if item.Role == models.RoleModel {
			role = models.RoleModel
		}
		history = append(history, &genai.Content{Role: role, Parts: parts})
	}
	return history
}

func messageParts(in ChatInput) []genai.Part {
	parts := make([]genai.Part, 0, 2)
	if strings.TrimSpace(in.Message) != "" {
		parts = append(parts, genai.Text(in.Message))
	}
	if in.Attachment != nil {
		parts = append(parts, genai.Blob{MIMEType: in.Attachment.MIMEType, Data: in.Attachment.Data})
	}
	return parts
}

func extractText(resp *genai.GenerateContentResponse) string {
	// only the first candidate is shown
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}
