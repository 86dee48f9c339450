package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ghstx9/geminiwrapper/internal/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case replyMsg:
		if _, applied := m.store.Resolve(msg.pending, msg.result, msg.err); applied {
			m.input.Focus()
		}
		m.layout()
		m.refresh()
		return m, nil

	case suggestionsMsg:
		if len(m.store.Messages()) == 0 && len(msg) > 0 {
			m.store.SetSuggestions(msg)
			m.layout()
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.copied = msg.label
		m.copySeq++
		return m, copyResetCmd(m.copySeq)

	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copied = ""
		}
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.status = "Could not save preferences: " + msg.err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		if m.store.State() != session.StateAwaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeNotice:
		return m.handleNoticeKey(msg)
	case modePicker:
		return m.handlePickerKey(msg)
	case modeCode:
		switch msg.String() {
		case "esc", "q", "enter":
			m.mode = modeChat
			m.codeView = ""
		}
		return m, nil
	}

	awaiting := m.store.State() == session.StateAwaiting

	switch msg.String() {
	case "ctrl+o":
		m.openPicker()
		return m, nil
	case "ctrl+b":
		m.showSidebar = !m.showSidebar
		m.layout()
		m.refresh()
		return m, nil
	case "ctrl+n":
		return m.newChat()
	case "ctrl+y":
		return m, m.copyLastReply()
	case "alt+1", "alt+2", "alt+3":
		if !awaiting {
			m.pickSuggestion(int(msg.String()[len("alt+")] - '1'))
		}
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "enter":
		if awaiting {
			return m, nil
		}
		return m.submit()
	}

	if awaiting {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.layout()
	return m, cmd
}

func (m Model) handleNoticeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		m.mode = modeChat
		m.prefs.LanguageNoticeDismissed = true
		return m, savePrefsCmd(m.prefsPath, m.prefs)
	}
	return m, nil
}

func (m *Model) openPicker() {
	m.mode = modePicker
	m.pickerCursor = 0
	current := m.store.Model()
	for i, info := range m.catalog {
		if info.ID == current {
			m.pickerCursor = i
		}
	}
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+o":
		m.mode = modeChat
	case "up", "k":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case "down", "j":
		if m.pickerCursor < len(m.catalog)-1 {
			m.pickerCursor++
		}
	case "enter":
		if len(m.catalog) == 0 {
			m.mode = modeChat
			return m, nil
		}
		choice := m.catalog[m.pickerCursor]
		if !choice.Available {
			m.status = choice.Name + " is not available on this server"
			return m, nil
		}
		m.mode = modeChat
		m.status = ""
		m.store.SwitchModel(choice.ID)
		m.refresh()
		m.prefs.LastModel = choice.ID
		return m, savePrefsCmd(m.prefsPath, m.prefs)
	}
	return m, nil
}

func (m Model) newChat() (tea.Model, tea.Cmd) {
	m.store.NewChat()
	m.attachment = nil
	m.status = ""
	m.input.Reset()
	m.input.Focus()
	m.layout()
	m.refresh()
	return m, m.fetchSuggestions()
}

func (m *Model) pickSuggestion(i int) {
	if len(m.store.Messages()) > 0 {
		return
	}
	chips := m.store.Suggestions()
	if i < 0 || i >= len(chips) {
		return
	}
	m.input.SetValue(chips[i])
	m.layout()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if cmd, ok := parseCommand(text); ok {
		m.input.Reset()
		m.layout()
		return m.runCommand(cmd)
	}

	p, err := m.store.Begin(text, m.attachment)
	if err != nil {
		return m, nil
	}

	m.attachment = nil
	m.status = ""
	m.input.Reset()
	m.input.Blur()
	m.layout()
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, sendCmd(m.store, p))
}

func (m Model) runCommand(cmd command) (tea.Model, tea.Cmd) {
	switch cmd.name {
	case "new":
		return m.newChat()

	case "model":
		m.openPicker()
		return m, nil

	case "attach":
		att, err := LoadAttachment(cmd.arg)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.attachment = att
		m.status = fmt.Sprintf("Attached %s (%s)", att.Name, att.Type)
		return m, nil

	case "detach":
		m.attachment = nil
		m.status = "Attachment removed"
		return m, nil

	case "copy":
		blocks := m.lastReplyBlocks()
		i, ok := blockIndex(cmd.arg, len(blocks))
		if !ok {
			m.status = fmt.Sprintf("No code block %q in the last reply (%d found)", cmd.arg, len(blocks))
			return m, nil
		}
		return m, copyCmd(m.copyFn, blocks[i].Code, fmt.Sprintf("code block %d", i+1))

	case "code":
		blocks := m.lastReplyBlocks()
		if len(blocks) == 0 {
			m.status = "The last reply has no code blocks"
			return m, nil
		}
		var b strings.Builder
		for i, block := range blocks {
			lang := block.Language
			if lang == "" {
				lang = "text"
			}
			fmt.Fprintf(&b, "%s\n%s\n\n", headerStyle.Render(fmt.Sprintf("[%d] %s", i+1, lang)), HighlightCode(block.Code, block.Language))
		}
		m.codeView = strings.TrimRight(b.String(), "\n")
		m.mode = modeCode
		return m, nil
	}
	return m, nil
}

func (m Model) lastReplyBlocks() []CodeBlock {
	last, ok := m.store.LastReply()
	if !ok {
		return nil
	}
	return ExtractCodeBlocks(last.Text)
}

func (m Model) copyLastReply() tea.Cmd {
	last, ok := m.store.LastReply()
	if !ok {
		return nil
	}
	return copyCmd(m.copyFn, last.Text, "message")
}
