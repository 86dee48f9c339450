package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ghstx9/geminiwrapper/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

func requestID(r *http.Request) string {
	return r.Header.Get("X-Request-ID")
}
