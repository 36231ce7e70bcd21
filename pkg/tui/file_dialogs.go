package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pluqqy/padbook/pkg/workflow"
)

// OpenPickerModel wraps the bubbles file picker for File > Open
type OpenPickerModel struct {
	active bool
	picker filepicker.Model
	filter workflow.FilterKind
	ext    string
	answer func(path string, ok bool)
}

// NewOpenPicker creates an inactive picker listing files with the text
// extension ext, or every file once the filter is switched.
func NewOpenPicker(ext string) *OpenPickerModel {
	fp := filepicker.New()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AutoHeight = false
	fp.Height = 15
	return &OpenPickerModel{picker: fp, ext: ext}
}

// Show opens the picker in dir and returns the command that reads it
func (m *OpenPickerModel) Show(dir string, answer func(string, bool)) tea.Cmd {
	m.active = true
	m.answer = answer
	m.setFilter(workflow.FilterText)
	m.picker.CurrentDirectory = dir
	return m.picker.Init()
}

// Active reports whether the picker is shown
func (m *OpenPickerModel) Active() bool {
	return m.active
}

// Filter returns the active name filter
func (m *OpenPickerModel) Filter() workflow.FilterKind {
	return m.filter
}

// SetHeight sizes the file list
func (m *OpenPickerModel) SetHeight(h int) {
	if h < 3 {
		h = 3
	}
	m.picker.Height = h
}

func (m *OpenPickerModel) setFilter(f workflow.FilterKind) {
	m.filter = f
	if f == workflow.FilterText {
		m.picker.AllowedTypes = []string{m.ext}
	} else {
		m.picker.AllowedTypes = []string{}
	}
}

// Update routes a message to the picker. Cancel closes it and NextFilter
// switches the filter.
func (m *OpenPickerModel) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, modalKeys.Cancel):
			m.finish("", false)
			return nil
		case key.Matches(keyMsg, modalKeys.NextFilter):
			m.setFilter(m.filter.Next())
			return nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.finish(path, true)
		return nil
	}

	return cmd
}

func (m *OpenPickerModel) finish(path string, ok bool) {
	m.active = false
	answer := m.answer
	m.answer = nil
	if answer != nil {
		answer(path, ok)
	}
}

// View renders the picker dialog
func (m *OpenPickerModel) View(theme Theme, width int) string {
	if !m.active {
		return ""
	}

	header := theme.DialogTitle.Render("Open a File")
	dir := theme.MenuHint.Render("Look in: " + m.picker.CurrentDirectory)
	filter := theme.MenuHint.Render(filterHint(m.filter, m.ext))
	help := theme.MenuHint.Render(modalKeys.Confirm.Help().Key + " open · ← back · " +
		modalKeys.Cancel.Help().Key + " close")

	body := lipgloss.JoinVertical(lipgloss.Left, header, dir, "", m.picker.View(), "", filter, help)
	return theme.Dialog.Width(dialogWidth(width)).Render(body)
}

// SaveAsModel asks for a destination name and filter
type SaveAsModel struct {
	active bool
	input  textinput.Model
	filter workflow.FilterKind
	ext    string
	answer func(path string, filter workflow.FilterKind, ok bool)
}

// NewSaveAs creates an inactive save dialog for the text extension ext
func NewSaveAs(ext string) *SaveAsModel {
	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = "untitled" + ext
	ti.CharLimit = 4096
	return &SaveAsModel{input: ti, ext: ext}
}

// Show opens the dialog prefilled with suggested, or with dir when empty
func (m *SaveAsModel) Show(dir, suggested string, answer func(string, workflow.FilterKind, bool)) tea.Cmd {
	m.active = true
	m.answer = answer
	m.filter = workflow.FilterText

	value := suggested
	if value == "" && dir != "" {
		value = dir + string(filepath.Separator)
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Active reports whether the dialog is shown
func (m *SaveAsModel) Active() bool {
	return m.active
}

// Filter returns the selected filter
func (m *SaveAsModel) Filter() workflow.FilterKind {
	return m.filter
}

// Value returns the typed path
func (m *SaveAsModel) Value() string {
	return m.input.Value()
}

// Update handles typing, the filter switch, confirm (save) and cancel
func (m *SaveAsModel) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, modalKeys.Cancel):
			m.finish("", false)
			return nil
		case key.Matches(keyMsg, modalKeys.NextFilter):
			m.filter = m.filter.Next()
			return nil
		case key.Matches(keyMsg, modalKeys.Confirm):
			path := strings.TrimSpace(m.input.Value())
			if path == "" || strings.HasSuffix(path, string(filepath.Separator)) {
				return nil
			}
			m.finish(path, true)
			return nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *SaveAsModel) finish(path string, ok bool) {
	m.active = false
	m.input.Blur()
	answer := m.answer
	m.answer = nil
	if answer != nil {
		answer(path, m.filter, ok)
	}
}

// View renders the dialog
func (m *SaveAsModel) View(theme Theme, width int) string {
	if !m.active {
		return ""
	}

	w := dialogWidth(width)
	m.input.Width = w - 14

	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.DialogTitle.Render("Save As"),
		"",
		m.input.View(),
		"",
		theme.MenuHint.Render(filterHint(m.filter, m.ext)),
		theme.MenuHint.Render(modalKeys.Confirm.Help().Key+" save · "+modalKeys.Cancel.Help().Key+" close"),
	)
	return theme.Dialog.Width(w).Render(body)
}

func filterHint(filter workflow.FilterKind, ext string) string {
	return "Type: " + filter.Label(ext) + "  (" + modalKeys.NextFilter.Help().Key + " to change)"
}

func dialogWidth(width int) int {
	w := width - 8
	if w > 80 {
		w = 80
	}
	if w < 30 {
		w = 30
	}
	return w
}
