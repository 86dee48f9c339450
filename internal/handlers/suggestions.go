package handlers

import (
	"log"
	"net/http"

	"github.com/ghstx9/geminiwrapper/internal/models"
	"github.com/ghstx9/geminiwrapper/internal/suggest"
)

type suggestionSampler interface {
	Sample(n int) ([]string, error)
}

type SuggestionsHandler struct {
	sampler suggestionSampler
}

func NewSuggestionsHandler(sampler suggestionSampler) *SuggestionsHandler {
	return &SuggestionsHandler{sampler: sampler}
}

// List returns three prompt suggestions. The fallback trio is sent with a
// 500 so the client can still render chips.
func (h *SuggestionsHandler) List(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.sampler.Sample(suggest.ChipCount)
	if err != nil {
		log.Printf("[%s] failed to sample suggestions: %v", requestID(r), err)
		writeJSON(w, http.StatusInternalServerError, models.SuggestionsResponse{Suggestions: suggest.FallbackChips()})
		return
	}

	writeJSON(w, http.StatusOK, models.SuggestionsResponse{Suggestions: suggestions})
}
