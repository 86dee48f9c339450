package models

import "github.com/ghstx9/geminiwrapper/internal/catalog"

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Part is one piece of a history turn. Only text parts are exchanged.
type Part struct {
	Text string `json:"text"`
}

// HistoryItem is a prior chat turn in the shape the Gemini API expects.
type HistoryItem struct {
	Role  string `json:"role"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// Text returns the first text part, which is what gateways receive as content.
func (h HistoryItem) Text() string {
	if len(h.Parts) == 0 {
		return ""
	}
	return h.Parts[0].Text
}

// Attachment is a file sent along with a message. Data is base64 encoded.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// ChatRequest is the payload sent to POST /chat.
type ChatRequest struct {
	Message    string        `json:"message"`
	History    []HistoryItem `json:"history"`
	ModelID    string        `json:"modelId,omitempty"`
	Attachment *Attachment   `json:"attachment,omitempty"`
}

// ChatResponse carries the assistant text. It is also used for the 429 and
// 500 envelopes so the client can show the text as a chat bubble.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is returned for requests the client must correct.
type ErrorResponse struct {
	Error string `json:"error"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type ModelInfo struct {
	catalog.Model
	Available bool `json:"available"`
}

type ModelsResponse struct {
	Default string      `json:"default"`
	Models  []ModelInfo `json:"models"`
}
