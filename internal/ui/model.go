// Package ui is the terminal chat front end built on Bubble Tea.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/ghstx9/geminiwrapper/internal/catalog"
	"github.com/ghstx9/geminiwrapper/internal/models"
	"github.com/ghstx9/geminiwrapper/internal/prefs"
	"github.com/ghstx9/geminiwrapper/internal/session"
)

const (
	minInputRows   = 1
	maxInputRows   = 8
	sidebarWidth   = 30
	copyResetDelay = 2 * time.Second
)

type mode int

const (
	modeChat mode = iota
	modePicker
	modeNotice
	modeCode
)

type (
	replyMsg struct {
		pending session.Pending
		result  session.Result
		err     error
	}
	suggestionsMsg []string
	copiedMsg      struct {
		label string
		err   error
	}
	copyResetMsg struct{ seq int }
	prefsSavedMsg struct{ err error }
)

type suggestionSource interface {
	Suggestions(ctx context.Context) []string
}

type Options struct {
	Store       *session.Store
	Suggestions suggestionSource // optional; chips then come from the store only
	Renderer    *Renderer
	Prefs       prefs.Preferences
	PrefsPath   string
	Models      []models.ModelInfo // empty uses the built-in catalog
	Copy        func(string) error // defaults to the system clipboard
}

type Model struct {
	store       *session.Store
	suggestions suggestionSource
	renderer    *Renderer
	prefs       prefs.Preferences
	prefsPath   string
	catalog     []models.ModelInfo
	copyFn      func(string) error

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	mode         mode
	showSidebar  bool
	pickerCursor int
	codeView     string
	attachment   *models.Attachment

	width, height int
	ready         bool
	rendered      map[string]string
	status        string
	copied        string
	copySeq       int
}

func New(opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask me anything..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 8000
	ta.SetHeight(minInputRows)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")
	ta.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	catalogModels := opts.Models
	if len(catalogModels) == 0 {
		for _, m := range catalog.All() {
			catalogModels = append(catalogModels, models.ModelInfo{Model: m, Available: true})
		}
	}

	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := Model{
		store:       opts.Store,
		suggestions: opts.Suggestions,
		renderer:    opts.Renderer,
		prefs:       opts.Prefs,
		prefsPath:   opts.PrefsPath,
		catalog:     catalogModels,
		copyFn:      copyFn,
		viewport:    vp,
		input:       ta,
		spinner:     sp,
		rendered:    make(map[string]string),
	}
	if !opts.Prefs.LanguageNoticeDismissed {
		m.mode = modeNotice
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.fetchSuggestions())
}

func (m Model) fetchSuggestions() tea.Cmd {
	if m.suggestions == nil {
		return nil
	}
	src := m.suggestions
	return func() tea.Msg {
		return suggestionsMsg(src.Suggestions(context.Background()))
	}
}

func sendCmd(store *session.Store, p session.Pending) tea.Cmd {
	return func() tea.Msg {
		res, err := store.Dispatch(context.Background(), p)
		return replyMsg{pending: p, result: res, err: err}
	}
}

func copyCmd(copyFn func(string) error, text, label string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{label: label, err: copyFn(text)}
	}
}

func copyResetCmd(seq int) tea.Cmd {
	return tea.Tick(copyResetDelay, func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}

func savePrefsCmd(path string, p prefs.Preferences) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// inputRows is how many rows the input needs to show value without
// scrolling, clamped to the auto-grow range.
func inputRows(value string, width int) int {
	if width < 1 {
		width = 1
	}
	rows := 0
	for _, line := range strings.Split(value, "\n") {
		w := runewidth.StringWidth(line)
		rows += 1 + w/width
		if w > 0 && w%width == 0 {
			rows--
		}
	}
	if rows < minInputRows {
		return minInputRows
	}
	if rows > maxInputRows {
		return maxInputRows
	}
	return rows
}
