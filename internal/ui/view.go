package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ghstx9/geminiwrapper/internal/catalog"
	"github.com/ghstx9/geminiwrapper/internal/session"
)

const languageNotice = "Limited language support\n\n" +
	"This assistant works best in English. Replies in other languages may be\n" +
	"less accurate or fall back to English.\n\n" +
	"Press enter to continue."

func (m *Model) mainWidth() int {
	w := m.width
	if m.showSidebar {
		w -= sidebarWidth
	}
	if w < 24 {
		w = 24
	}
	return w
}

func (m *Model) showChips() bool {
	return len(m.store.Messages()) == 0 && len(m.store.Suggestions()) > 0
}

// layout sizes the viewport and the auto-growing input for the window.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	width := m.mainWidth()

	m.input.SetWidth(width)
	rows := inputRows(m.input.Value(), width-lipgloss.Width(m.input.Prompt))
	m.input.SetHeight(rows)

	used := 1 + 1 + rows + 1 // header, input border, input, status
	if m.showChips() {
		used += 3
	}
	height := m.height - used
	if height < 3 {
		height = 3
	}
	m.viewport.Width = width
	m.viewport.Height = height

	if wrap := clampRenderWidth(width - 2); m.renderer != nil && m.renderer.width != wrap {
		if err := m.renderer.SetWidth(wrap); err == nil {
			m.rendered = make(map[string]string)
		}
	}
}

// refresh rebuilds the transcript and scrolls to the newest message.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	var b strings.Builder

	msgs := m.store.Messages()
	if len(msgs) == 0 {
		b.WriteString(mutedStyle.Render("How can I help you today?"))
		b.WriteString("\n\n")
	}
	for _, msg := range msgs {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n\n")
	}
	if m.store.State() == session.StateAwaiting {
		b.WriteString(m.spinner.View() + mutedStyle.Render(" Thinking..."))
	}

	m.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) renderMessage(msg session.Message) string {
	if out, ok := m.rendered[msg.ID]; ok {
		return out
	}

	var out string
	if msg.IsUser() {
		body := msg.Text
		if msg.Attachment != nil {
			body = strings.TrimSpace(body + "\n" + mutedStyle.Render("📎 "+msg.Attachment.Name))
		}
		out = userLabelStyle.Render("You") + "\n" + userTextStyle.Width(m.mainWidth()-2).Render(body)
	} else {
		body := msg.Text
		if m.renderer != nil {
			body = m.renderer.Render(msg.Text)
		}
		if strings.HasPrefix(msg.Text, "Error: ") {
			body = errorStyle.Render(msg.Text)
		}
		out = assistantLabelStyle.Render("Assistant") + "\n" + body
	}

	m.rendered[msg.ID] = out
	return out
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.mode {
	case modeNotice:
		return m.place(modalStyle.Render(languageNotice))
	case modePicker:
		return m.place(m.pickerView())
	case modeCode:
		return m.place(modalStyle.Render(m.codeView + "\n\n" + mutedStyle.Render("/copy N copies a block · esc closes")))
	}

	parts := []string{m.headerView(), m.viewport.View()}
	if m.showChips() {
		parts = append(parts, m.chipsView())
	}
	parts = append(parts, inputStyle.Width(m.mainWidth()).Render(m.input.View()), m.statusView())
	main := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.showSidebar {
		return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), main)
	}
	return main
}

func (m Model) place(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) headerView() string {
	return headerStyle.Render("Gemini Wrapper") + mutedStyle.Render("  ·  "+catalog.DisplayName(m.store.Model()))
}

func (m Model) chipsView() string {
	chips := m.store.Suggestions()
	rendered := make([]string, 0, len(chips))
	for i, c := range chips {
		rendered = append(rendered, chipStyle.Render(fmt.Sprintf("alt+%d  %s", i+1, c)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) statusView() string {
	var left string
	switch {
	case m.copied != "":
		left = copiedStyle.Render("✓ Copied " + m.copied)
	case m.status != "":
		left = errorStyle.Render(m.status)
	case m.attachment != nil:
		left = mutedStyle.Render("📎 " + m.attachment.Name)
	}
	help := mutedStyle.Render("enter send · alt+enter newline · ctrl+o model · ctrl+b sidebar · ctrl+y copy")
	if left == "" {
		return help
	}
	return left + "  " + help
}

func (m Model) sidebarView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("+ New chat"))
	b.WriteString(mutedStyle.Render("  ctrl+n"))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Model"))
	b.WriteString("\n")
	current := m.store.Model()
	b.WriteString(selectedStyle.Render(catalog.DisplayName(current)))
	if info, ok := catalog.Lookup(current); ok {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(info.Description))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d messages", len(m.store.Messages()))))

	height := m.height
	if height < 1 {
		height = 1
	}
	return sidebarStyle.Width(sidebarWidth - 1).Height(height).Render(b.String())
}

func (m Model) pickerView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Choose a model"))
	b.WriteString("\n\n")

	current := m.store.Model()
	for i, info := range m.catalog {
		cursor := "  "
		if i == m.pickerCursor {
			cursor = "> "
		}
		name := info.Name
		if info.ID == current {
			name += " ✓"
		}
		line := fmt.Sprintf("%s%-18s %s", cursor, name, info.Description)
		switch {
		case !info.Available:
			line = unavailableStyle.Render(line)
		case i == m.pickerCursor:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("↑/↓ move · enter select · esc cancel"))
	return modalStyle.Render(b.String())
}
