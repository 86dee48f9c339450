package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghstx9/geminiwrapper/internal/config"
	"github.com/ghstx9/geminiwrapper/internal/handlers"
	"github.com/ghstx9/geminiwrapper/internal/router"
	"github.com/ghstx9/geminiwrapper/internal/services"
	"github.com/ghstx9/geminiwrapper/internal/suggest"
)

func main() {
	log.Println("🚀 Starting Gemini Wrapper relay...")

	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("✗ Configuration error: %v", err)
	}
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Gemini Client ────
	gemini, err := services.NewGeminiBackend(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer gemini.Close()
	log.Printf("✓ Gemini client initialized (default model: %s)", cfg.GeminiModel)

	// ──── Step 3: Initialize OpenRouter Gateway (optional) ────
	var gateway services.Backend
	if cfg.GatewayEnabled() {
		gateway = services.NewOpenRouterBackend(services.OpenRouterConfig{
			APIKey:   cfg.OpenRouterAPIKey,
			BaseURL:  cfg.OpenRouterBaseURL,
			SiteURL:  cfg.SiteURL,
			SiteName: cfg.SiteName,
			Timeout:  cfg.RequestTimeout,
		})
		log.Println("✓ OpenRouter gateway enabled")
	} else {
		log.Println("✗ OPENROUTER_API_KEY not set, gateway models disabled")
	}

	// ──── Initialize Services ────
	relay := services.NewRelay(gemini, gateway, services.RelayOptions{
		DefaultModel:    cfg.GeminiModel,
		ConcealIdentity: cfg.ConcealIdentity,
	})
	suggestions := suggest.Default()

	// ──── Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(relay)
	suggestionsHandler := handlers.NewSuggestionsHandler(suggestions)
	modelsHandler := handlers.NewModelsHandler(relay)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(chatHandler, suggestionsHandler, modelsHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Relay ready on http://localhost:%s (env: %s)", cfg.Port, cfg.Env)
	log.Printf("  Chat: POST http://localhost:%s/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
