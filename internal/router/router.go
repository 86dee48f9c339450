package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ghstx9/geminiwrapper/internal/handlers"
	"github.com/ghstx9/geminiwrapper/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	suggestionsHandler *handlers.SuggestionsHandler,
	modelsHandler *handlers.ModelsHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/models", modelsHandler.List)
	r.Get("/suggestions", suggestionsHandler.List)
	r.Post("/chat", chatHandler.Chat)

	return r
}
