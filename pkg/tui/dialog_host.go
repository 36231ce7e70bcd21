package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pluqqy/padbook/pkg/workflow"
)

// dialogHost implements workflow.Dialogs with in-terminal dialogs. Only one
// dialog is shown at a time; requests made while one is open wait in order.
type dialogHost struct {
	confirm *ConfirmationModel
	message *MessageModel
	open    *OpenPickerModel
	saveAs  *SaveAsModel

	queue   []func() tea.Cmd
	pending []tea.Cmd
}

func newDialogHost(ext string) *dialogHost {
	return &dialogHost{
		confirm: NewConfirmation(),
		message: NewMessage(),
		open:    NewOpenPicker(ext),
		saveAs:  NewSaveAs(ext),
	}
}

var _ workflow.Dialogs = (*dialogHost)(nil)

func (h *dialogHost) PickOpenPath(startDir string, answer func(string, bool)) {
	h.request(func() tea.Cmd {
		return h.open.Show(startDir, answer)
	})
}

func (h *dialogHost) PickSavePath(startDir, suggested string, answer func(string, workflow.FilterKind, bool)) {
	h.request(func() tea.Cmd {
		return h.saveAs.Show(startDir, suggested, answer)
	})
}

func (h *dialogHost) Confirm(text string, answer func(workflow.Choice)) {
	h.request(func() tea.Cmd {
		h.confirm.Show(ConfirmationConfig{
			Title:   workflow.AppTitle,
			Message: text,
		}, answer)
		return nil
	})
}

func (h *dialogHost) Warn(text string, done func()) {
	h.request(func() tea.Cmd {
		h.message.Show(workflow.AppTitle, text, done)
		return nil
	})
}

func (h *dialogHost) request(show func() tea.Cmd) {
	if h.Active() {
		h.queue = append(h.queue, show)
		return
	}
	h.pending = append(h.pending, show())
}

// Active reports whether any dialog is shown
func (h *dialogHost) Active() bool {
	return h.confirm.Active() || h.message.Active() || h.open.Active() || h.saveAs.Active()
}

// Update routes msg to the visible dialog
func (h *dialogHost) Update(msg tea.Msg) {
	switch {
	case h.confirm.Active():
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			h.pending = append(h.pending, h.confirm.Update(keyMsg))
		}
	case h.message.Active():
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			h.pending = append(h.pending, h.message.Update(keyMsg))
		}
	case h.open.Active():
		h.pending = append(h.pending, h.open.Update(msg))
	case h.saveAs.Active():
		h.pending = append(h.pending, h.saveAs.Update(msg))
	}

	for !h.Active() && len(h.queue) > 0 {
		show := h.queue[0]
		h.queue = h.queue[1:]
		h.pending = append(h.pending, show())
	}
}

// Drain returns the commands produced since the last call
func (h *dialogHost) Drain() tea.Cmd {
	cmds := h.pending
	h.pending = nil
	return tea.Batch(cmds...)
}

// View renders the visible dialog
func (h *dialogHost) View(theme Theme, width int) string {
	switch {
	case h.confirm.Active():
		return h.confirm.View(theme)
	case h.message.Active():
		return h.message.View(theme)
	case h.open.Active():
		return h.open.View(theme, width)
	case h.saveAs.Active():
		return h.saveAs.View(theme, width)
	}
	return ""
}
