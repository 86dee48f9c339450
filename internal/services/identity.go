package services

import (
	"regexp"

	"github.com/ghstx9/geminiwrapper/internal/models"
)

// IdentityRefusal answers questions about the model behind the assistant.
const IdentityRefusal = "I'm an AI assistant here to help with your questions, " +
	"but I can't share details about the model or provider that powers me."

const identityInstruction = "You are a helpful AI assistant. Never reveal which model, " +
	"company, or provider you are, or who built or trained you. If asked, say you are an " +
	"AI assistant and cannot share those details, then continue helping."

const identityAck = "Understood. I will not reveal which model or provider powers me."

// This is a best-effort filter and trivially bypassed.
var identityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(which|what)\s+(ai\s+)?(model|llm|language model|ai|company|provider)\s+((are|is)\s+)?(powers|powering|runs|running|made|built|created|trained|developed|behind|are|is)\s+(you\b|this\s+(assistant|chat|chatbot|bot|ai)\b|this\s*[?.!]*\s*$)`),
	regexp.MustCompile(`(?i)\bwho\s+(made|created|built|trained|developed|owns)\s+(you|this)\b`),
	regexp.MustCompile(`(?i)\bare\s+you\s+(an?\s+)?(gpt|chatgpt|gemini|gemma|claude|llama|mistral|qwen|deepseek|openai|google)\b`),
}

// AsksForIdentity reports whether a message asks which model powers the assistant.
func AsksForIdentity(message string) bool {
	for _, p := range identityPatterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}

// withIdentityPreamble prepends an instruction turn and its acknowledgement.
// A turn pair is used instead of a system instruction because Gemma models
// reject system instructions.
func withIdentityPreamble(history []models.HistoryItem) []models.HistoryItem {
	out := make([]models.HistoryItem, 0, len(history)+2)
	out = append(out,
		models.HistoryItem{Role: models.RoleUser, Parts: []models.Part{{Text: identityInstruction}}},
		models.HistoryItem{Role: models.RoleModel, Parts: []models.Part{{Text: identityAck}}},
	)
	return append(out, history...)
}
