package services

import (
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/ghstx9/geminiwrapper/internal/models"
)

func TestSafetySettings(t *testing.T) {
	settings := SafetySettings()
	if len(settings) != 4 {
		t.Fatalf("expected 4 safety settings, got %d", len(settings))
	}

	want := map[genai.HarmCategory]bool{
		genai.HarmCategoryHarassment:       false,
		genai.HarmCategoryHateSpeech:       false,
		genai.HarmCategorySexuallyExplicit: false,
		genai.HarmCategoryDangerousContent: false,
	}
	for _, s := range settings {
		if s.Threshold != genai.HarmBlockMediumAndAbove {
			t.Errorf("expected medium-and-above threshold for %v, got %v", s.Category, s.Threshold)
		}
		if _, ok := want[s.Category]; !ok {
			t.Errorf("unexpected category %v", s.Category)
		}
		want[s.Category] = true
	}
	for c, seen := range want {
		if !seen {
			t.Errorf("missing category %v", c)
		}
	}
}

func TestToGeminiHistory(t *testing.T) {
	items := []models.HistoryItem{
		{Role: "user", Parts: []models.Part{{Text: "Hello"}}},
		{Role: "model", Parts: []models.Part{{Text: "Hi there!"}}},
		{Role: "user", Parts: []models.Part{{Text: ""}}},
		{Role: "assistant", Parts: []models.Part{{Text: "odd role"}}},
	}

	got := toGeminiHistory(items)
	if len(got) != 3 {
		t.Fatalf("expected empty turn to be dropped, got %d items", len(got))
	}
	if got[0].Role != "user" || got[1].Role != "model" {
		t.Errorf("expected user/model roles, got %s/%s", got[0].Role, got[1].Role)
	}
	if got[2].Role != "user" {
		t.Errorf("expected unknown roles to be sent as user, got %s", got[2].Role)
	}
	if text, ok := got[1].Parts[0].(genai.Text); !ok || string(text) != "Hi there!" {
		t.Errorf("expected text part 'Hi there!', got %v", got[1].Parts[0])
	}
}

func TestMessageParts(t *testing.T) {
	att := &DecodedAttachment{Name: "a.png", MIMEType: "image/png", Data: []byte{1, 2}}

	parts := messageParts(ChatInput{Message: "describe", Attachment: att})
	if len(parts) != 2 {
		t.Fatalf("expected text and blob parts, got %d", len(parts))
	}
	blob, ok := parts[1].(genai.Blob)
	if !ok || blob.MIMEType != "image/png" {
		t.Fatalf("expected image blob, got %#v", parts[1])
	}

	parts = messageParts(ChatInput{Message: "  ", Attachment: att})
	if len(parts) != 1 {
		t.Fatalf("expected blank text to be omitted, got %d parts", len(parts))
	}
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hi "), genai.Text("there!")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("second candidate")}}},
		},
	}

	if got := extractText(resp); got != "Hi there!" {
		t.Fatalf("expected first candidate text, got %q", got)
	}
	if got := extractText(&genai.GenerateContentResponse{}); got != "" {
		t.Fatalf("expected empty text for no candidates, got %q", got)
	}
}
