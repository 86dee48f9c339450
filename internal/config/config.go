package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ghstx9/geminiwrapper/internal/catalog"
)

type Config struct {
	// Server
	Port           string
	Env            string
	RequestTimeout time.Duration

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// OpenRouter gateway (optional)
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	SiteURL           string
	SiteName          string

	// Frontend
	FrontendURL string

	// Assistant
	ConcealIdentity bool
}

// GatewayEnabled reports whether non-Gemini models can be served.
func (c *Config) GatewayEnabled() bool {
	return c.OpenRouterAPIKey != ""
}

// MissingEnvError is returned by Load when a required variable is unset.
type MissingEnvError struct {
	Key string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Key)
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	geminiKey, err := requireEnv("GEMINI_API_KEY")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Env:               getEnvOrDefault("ENV", "development"),
		RequestTimeout:    time.Duration(getEnvAsIntOrDefault("REQUEST_TIMEOUT_SECONDS", 120)) * time.Second,
		GeminiAPIKey:      geminiKey,
		GeminiModel:       getEnvOrDefault("GEMINI_MODEL", catalog.DefaultModelID),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		SiteURL:           getEnvOrDefault("SITE_URL", "http://localhost:3000"),
		SiteName:          getEnvOrDefault("SITE_NAME", "Gemini Wrapper"),
		FrontendURL:       getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		ConcealIdentity:   getEnvAsBoolOrDefault("CONCEAL_IDENTITY", true),
	}

	return cfg, nil
}

// ClientConfig configures the terminal chat client.
type ClientConfig struct {
	ServerURL string
	PrefsPath string
}

func LoadClient() *ClientConfig {
	godotenv.Load()

	return &ClientConfig{
		ServerURL: strings.TrimRight(getEnvOrDefault("CHAT_SERVER_URL", "http://localhost:8080"), "/"),
		PrefsPath: getEnvOrDefault("CHAT_PREFS_PATH", defaultPrefsPath()),
	}
}

func defaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".geminiwrapper", "prefs.toml")
	}
	return filepath.Join(home, ".geminiwrapper", "prefs.toml")
}

func requireEnv(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", &MissingEnvError{Key: key}
	}
	return val, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
