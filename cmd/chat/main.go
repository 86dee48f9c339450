package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ghstx9/geminiwrapper/internal/catalog"
	"github.com/ghstx9/geminiwrapper/internal/config"
	"github.com/ghstx9/geminiwrapper/internal/models"
	"github.com/ghstx9/geminiwrapper/internal/prefs"
	"github.com/ghstx9/geminiwrapper/internal/session"
	"github.com/ghstx9/geminiwrapper/internal/suggest"
	"github.com/ghstx9/geminiwrapper/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadClient()

	userPrefs, err := prefs.Load(cfg.PrefsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring preferences: %v\n", err)
		userPrefs = prefs.Preferences{}
	}

	relay := session.NewHTTPRelay(cfg.ServerURL, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	available, err := relay.Models(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not list models from %s: %v\n", cfg.ServerURL, err)
	}

	store := session.NewStore(relay, suggest.Default(), startModel(userPrefs.LastModel, available))

	renderer, err := ui.NewRenderer("", 80)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}

	m := ui.New(ui.Options{
		Store:       store,
		Suggestions: relay,
		Renderer:    renderer,
		Prefs:       userPrefs,
		PrefsPath:   cfg.PrefsPath,
		Models:      available.Models,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// startModel picks the saved model when the server can still serve it.
func startModel(saved string, available models.ModelsResponse) string {
	if saved != "" {
		if len(available.Models) == 0 {
			return saved
		}
		for _, m := range available.Models {
			if m.ID == saved && m.Available {
				return saved
			}
		}
	}
	if available.Default != "" {
		return available.Default
	}
	return catalog.DefaultModelID
}
