package handlers

import (
	"net/http"

	"github.com/ghstx9/geminiwrapper/internal/catalog"
	"github.com/ghstx9/geminiwrapper/internal/models"
)

type modelAvailability interface {
	DefaultModel() string
	GatewayEnabled() bool
}

type ModelsHandler struct {
	relay modelAvailability
}

func NewModelsHandler(relay modelAvailability) *ModelsHandler {
	return &ModelsHandler{relay: relay}
}

// List returns the model catalog with availability for this deployment.
func (h *ModelsHandler) List(w http.ResponseWriter, r *http.Request) {
	all := catalog.All()
	resp := models.ModelsResponse{
		Default: h.relay.DefaultModel(),
		Models:  make([]models.ModelInfo, 0, len(all)),
	}

	for _, m := range all {
		available := m.Backend == catalog.BackendGemini || h.relay.GatewayEnabled()
		resp.Models = append(resp.Models, models.ModelInfo{Model: m, Available: available})
	}

	writeJSON(w, http.StatusOK, resp)
}
