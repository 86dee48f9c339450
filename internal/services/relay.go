package services

import (
	"context"
	"strings"

	"github.com/ghstx9/geminiwrapper/internal/catalog"
	"github.com/ghstx9/geminiwrapper/internal/models"
)

type RelayOptions struct {
	DefaultModel    string
	ConcealIdentity bool
}

// Relay picks a backend for each chat request and forwards the conversation.
// It holds no per-conversation state.
type Relay struct {
	gemini          Backend
	gateway         Backend
	defaultModel    string
	concealIdentity bool
}

// NewRelay builds a relay. gateway may be nil, which disables non-Gemini models.
func NewRelay(gemini, gateway Backend, opts RelayOptions) *Relay {
	defaultModel := opts.DefaultModel
	if defaultModel == "" {
		defaultModel = catalog.DefaultModelID
	}
	return &Relay{
		gemini:          gemini,
		gateway:         gateway,
		defaultModel:    defaultModel,
		concealIdentity: opts.ConcealIdentity,
	}
}

func (r *Relay) DefaultModel() string { return r.defaultModel }

func (r *Relay) GatewayEnabled() bool { return r.gateway != nil }

// Send validates the request, routes it and returns the assistant text.
func (r *Relay) Send(ctx context.Context, req models.ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" && req.Attachment == nil {
		return "", &ValidationError{Message: "Message is required"}
	}

	att, err := DecodeAttachment(req.Attachment)
	if err != nil {
		return "", err
	}

	if r.concealIdentity && AsksForIdentity(req.Message) {
		return IdentityRefusal, nil
	}

	modelID := strings.TrimSpace(req.ModelID)
	if modelID == "" {
		modelID = r.defaultModel
	}

	backend, err := r.backendFor(modelID)
	if err != nil {
		return "", err
	}

	history := req.History
	if r.concealIdentity {
		history = withIdentityPreamble(history)
	}

	return backend.Chat(ctx, ChatInput{
		ModelID:    modelID,
		Message:    req.Message,
		History:    history,
		Attachment: att,
	})
}

func (r *Relay) backendFor(modelID string) (Backend, error) {
	if catalog.BackendFor(modelID) == catalog.BackendGemini {
		return r.gemini, nil
	}
	if r.gateway == nil {
		return nil, &ValidationError{Message: "Model is not available"}
	}
	return r.gateway, nil
}
