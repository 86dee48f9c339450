package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghstx9/geminiwrapper/internal/handlers"
	"github.com/ghstx9/geminiwrapper/internal/services"
	"github.com/ghstx9/geminiwrapper/internal/suggest"
)

type echoBackend struct{}

func (echoBackend) Chat(ctx context.Context, in services.ChatInput) (string, error) {
	return "echo: " + in.Message, nil
}

func newTestRouter() http.Handler {
	relay := services.NewRelay(echoBackend{}, nil, services.RelayOptions{})
	return New(
		handlers.NewChatHandler(relay),
		handlers.NewSuggestionsHandler(suggest.Default()),
		handlers.NewModelsHandler(relay),
		"http://localhost:3000",
	)
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK, `"status":"ok"`},
		{"models", http.MethodGet, "/models", "", http.StatusOK, `"default":"gemini-2.5-flash"`},
		{"suggestions", http.MethodGet, "/suggestions", "", http.StatusOK, `"suggestions"`},
		{"chat", http.MethodPost, "/chat", `{"message":"Hello","history":[]}`, http.StatusOK, `"response":"echo: Hello"`},
		{"chat wrong method", http.MethodGet, "/chat", "", http.StatusMethodNotAllowed, ""},
		{"unknown route", http.MethodGet, "/api/v1/chat", "", http.StatusNotFound, ""},
	}

	h := newTestRouter()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			if tc.wantBody != "" && !strings.Contains(rr.Body.String(), tc.wantBody) {
				t.Errorf("Expected body to contain %s, got %s", tc.wantBody, rr.Body.String())
			}
			if rr.Header().Get("X-Request-ID") == "" {
				t.Errorf("Expected X-Request-ID on response")
			}
		})
	}
}
