// Package prefs stores the chat client's local preferences in a TOML file.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Preferences struct {
	// LanguageNoticeDismissed hides the limited-language advisory on start.
	LanguageNoticeDismissed bool   `toml:"language_notice_dismissed"`
	LastModel               string `toml:"last_model"`
}

// Load reads preferences from path. A missing file yields zero preferences.
func Load(path string) (Preferences, error) {
	var p Preferences
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Preferences{}, nil
		}
		return Preferences{}, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return p, nil
}

// Save writes preferences to path, creating the parent directory.
func Save(path string, p Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create preferences file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# geminiwrapper chat preferences")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(p); err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	return nil
}
