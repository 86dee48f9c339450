package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ghstx9/geminiwrapper/internal/models"
	"github.com/ghstx9/geminiwrapper/internal/suggest"
)

// HTTPRelay talks to the relay server over HTTP.
type HTTPRelay struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRelay returns a relay client for baseURL. The client has no timeout;
// the server bounds how long a turn may take.
func NewHTTPRelay(baseURL string, client *http.Client) *HTTPRelay {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPRelay{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// envelope covers every body shape /chat answers with.
type envelope struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (r *HTTPRelay) Send(ctx context.Context, chatReq models.ChatRequest) (Result, error) {
	if chatReq.History == nil {
		chatReq.History = []models.HistoryItem{}
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	res := Result{
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return Result{}, fmt.Errorf("decode response: %w", err)
		}
		// Non-JSON error pages fall back to the status text.
		return res, nil
	}

	res.Response = env.Response
	res.Error = env.Error
	return res, nil
}

// Suggestions fetches prompt chips. Any failure yields the fixed fallback.
func (r *HTTPRelay) Suggestions(ctx context.Context) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/suggestions", nil)
	if err != nil {
		return suggest.FallbackChips()
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return suggest.FallbackChips()
	}
	defer resp.Body.Close()

	var out models.SuggestionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Suggestions) == 0 {
		return suggest.FallbackChips()
	}
	return out.Suggestions
}

// Models fetches the server's model catalog with availability flags.
func (r *HTTPRelay) Models(ctx context.Context) (models.ModelsResponse, error) {
	var out models.ModelsResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/models", nil)
	if err != nil {
		return out, fmt.Errorf("create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("list models: %s", statusText(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode models: %w", err)
	}
	return out, nil
}

// statusText strips the numeric code from resp.Status ("502 Bad Gateway").
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
