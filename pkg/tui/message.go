package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

// MessageModel is a modal warning box dismissed with enter or esc
type MessageModel struct {
	active    bool
	title     string
	text      string
	width     int
	onDismiss func()
}

// NewMessage creates a new message model
func NewMessage() *MessageModel {
	return &MessageModel{width: 60}
}

// Show activates the message box
func (m *MessageModel) Show(title, text string, onDismiss func()) {
	m.active = true
	m.title = title
	m.text = text
	m.onDismiss = onDismiss
}

// Active returns whether the message is shown
func (m *MessageModel) Active() bool {
	return m.active
}

// Text returns the message body
func (m *MessageModel) Text() string {
	return m.text
}

// Update dismisses the box on enter, esc, space or q
func (m *MessageModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	if !key.Matches(msg, modalKeys.Press, modalKeys.Cancel) && msg.String() != "q" {
		return nil
	}

	m.active = false
	onDismiss := m.onDismiss
	m.onDismiss = nil
	if onDismiss != nil {
		onDismiss()
	}
	return nil
}

// View renders the box
func (m *MessageModel) View(theme Theme) string {
	if !m.active {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.DialogTitle.Render("⚠  " + m.title))
	b.WriteString("\n\n")
	b.WriteString(theme.WarningText.Render(wordwrap.String(m.text, m.width-6)))
	b.WriteString("\n\n")
	b.WriteString(theme.MenuHint.Render("enter ok"))

	return theme.Dialog.Width(m.width).Render(b.String())
}
