package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pluqqy/padbook/pkg/workflow"
)

// ConfirmOption is one button of a confirmation dialog
type ConfirmOption struct {
	Label       string
	Keys        []string
	Choice      workflow.Choice
	Destructive bool // rendered in the danger colour
}

// SaveOptions are the buttons of the save confirmation
var SaveOptions = []ConfirmOption{
	{Label: "Save", Keys: []string{"s", "S", "y", "Y"}, Choice: workflow.ChoiceSave},
	{Label: "Don't Save", Keys: []string{"d", "D", "n", "N"}, Choice: workflow.ChoiceDiscard, Destructive: true},
	{Label: "Cancel", Keys: []string{"c", "C"}, Choice: workflow.ChoiceCancel},
}

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title   string          // Dialog title (optional)
	Message string          // Main confirmation message
	Options []ConfirmOption // Defaults to SaveOptions
	Width   int             // Dialog width, 0 for default
}

// ConfirmationModel handles Save / Discard / Cancel prompts. Esc always
// answers Cancel.
type ConfirmationModel struct {
	active   bool
	config   ConfirmationConfig
	selected int
	onAnswer func(workflow.Choice)
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onAnswer func(workflow.Choice)) {
	m.active = true
	m.config = config
	m.onAnswer = onAnswer
	m.selected = 0

	if len(m.config.Options) == 0 {
		m.config.Options = SaveOptions
	}
	if m.config.Width == 0 {
		m.config.Width = 60
	}
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Selected returns the highlighted option
func (m *ConfirmationModel) Selected() ConfirmOption {
	return m.config.Options[m.selected]
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch {
	case key.Matches(msg, modalKeys.Cancel):
		m.answer(workflow.ChoiceCancel)
		return nil
	case key.Matches(msg, modalKeys.Press):
		m.answer(m.config.Options[m.selected].Choice)
		return nil
	}

	k := msg.String()
	switch k {
	case "left", "shift+tab", "h":
		m.selected = (m.selected + len(m.config.Options) - 1) % len(m.config.Options)
		return nil
	case "right", "tab", "l":
		m.selected = (m.selected + 1) % len(m.config.Options)
		return nil
	}

	for _, opt := range m.config.Options {
		for _, optKey := range opt.Keys {
			if k == optKey {
				m.answer(opt.Choice)
				return nil
			}
		}
	}

	return nil
}

func (m *ConfirmationModel) answer(choice workflow.Choice) {
	m.active = false
	onAnswer := m.onAnswer
	m.onAnswer = nil
	if onAnswer != nil {
		onAnswer(choice)
	}
}

// View renders the dialog
func (m *ConfirmationModel) View(theme Theme) string {
	if !m.active {
		return ""
	}

	contentWidth := m.config.Width - 6 // border + padding

	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(theme.DialogTitle.Render("⚠  " + m.config.Title))
		b.WriteString("\n\n")
	}
	b.WriteString(wordwrap.String(m.config.Message, contentWidth))
	b.WriteString("\n\n")

	buttons := make([]string, 0, len(m.config.Options))
	for i, opt := range m.config.Options {
		label := "[" + opt.Label + "]"
		style := theme.MenuItem
		if opt.Destructive {
			style = style.Foreground(theme.Danger)
		}
		if i == m.selected {
			style = theme.MenuSelected
		}
		buttons = append(buttons, style.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	b.WriteString("\n")
	b.WriteString(theme.MenuHint.Render("s save · d don't save · esc cancel"))

	return theme.Dialog.Width(m.config.Width).Render(b.String())
}
