package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ghstx9/geminiwrapper/internal/models"
	"github.com/ghstx9/geminiwrapper/internal/services"
)

type chatRelay interface {
	Send(ctx context.Context, req models.ChatRequest) (string, error)
}

type ChatHandler struct {
	relay chatRelay
}

func NewChatHandler(relay chatRelay) *ChatHandler {
	return &ChatHandler{relay: relay}
}

// Chat relays one user turn plus its history to the selected model.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	reply, err := h.relay.Send(r.Context(), req)
	if err != nil {
		h.handleRelayError(w, r, req, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}

// handleRelayError writes the client envelope for a failed relay call.
// Rate-limit and upstream failures use the response key so the client can
// show them as chat bubbles; provider details stay in the server log.
func (h *ChatHandler) handleRelayError(w http.ResponseWriter, r *http.Request, req models.ChatRequest, err error) {
	switch services.ClassifyError(err) {
	case services.KindInvalidRequest:
		var verr *services.ValidationError
		errors.As(err, &verr)
		writeJSON(w, http.StatusBadRequest, errorResp(verr.Message))
	case services.KindRateLimited:
		log.Printf("[%s] rate limited (model=%q): %v", requestID(r), req.ModelID, err)
		writeJSON(w, http.StatusTooManyRequests, models.ChatResponse{Response: services.RateLimitAdvisory})
	default:
		log.Printf("[%s] --- ERROR IN CHAT RELAY --- model=%q: %v", requestID(r), req.ModelID, err)
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{Response: services.GenericFailureMessage})
	}
}
