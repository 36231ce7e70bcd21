package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pluqqy/padbook/pkg/workflow"
)

// FatalText formats a startup failure for display
func FatalText(err error) string {
	text := "An exception was raised"
	if err != nil {
		text += "\n" + err.Error()
	}
	return text
}

// FatalModel shows an unrecoverable error and quits once dismissed
type FatalModel struct {
	text     string
	theme    Theme
	viewport viewport.Model
	ready    bool
	done     bool
}

// NewFatalModel creates the error screen for err
func NewFatalModel(err error) *FatalModel {
	return &FatalModel{
		text:  FatalText(err),
		theme: DefaultTheme(),
	}
}

func (m *FatalModel) Init() tea.Cmd {
	return tea.SetWindowTitle(workflow.AppTitle)
}

// Done reports whether the error was dismissed
func (m *FatalModel) Done() bool {
	return m.done
}

func (m *FatalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := dialogWidth(msg.Width)
		h := msg.Height - 10
		if h < 3 {
			h = 3
		}
		m.viewport = viewport.New(w-6, h)
		m.viewport.SetContent(wordwrap.String(m.text, w-6))
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, modalKeys.Press, modalKeys.Cancel) || msg.String() == "q" || msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *FatalModel) View() string {
	if m.done {
		return ""
	}
	if !m.ready {
		return m.text
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Danger).Render("✗  " + workflow.AppTitle)
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.viewport.View(),
		"",
		m.theme.MenuHint.Render("enter close"),
	)
	box := m.theme.Dialog.BorderForeground(m.theme.Danger).Render(body)
	return lipgloss.Place(m.viewport.Width+10, m.viewport.Height+10, lipgloss.Center, lipgloss.Center, box)
}

// RunFatal shows err in its own program and returns once it is dismissed
func RunFatal(err error) error {
	_, runErr := tea.NewProgram(NewFatalModel(err), tea.WithAltScreen()).Run()
	return runErr
}
