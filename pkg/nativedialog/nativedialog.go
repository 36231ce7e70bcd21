// Package nativedialog shows OS file pickers and message boxes in place of the
// in-terminal dialogs.
package nativedialog

import (
	"errors"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pluqqy/padbook/pkg/workflow"
	"github.com/sqweek/dialog"
)

// ResumeMsg carries a dialog answer back to the UI goroutine. The receiving
// Update must call Resume.
type ResumeMsg func()

// Resume runs the answer
func (r ResumeMsg) Resume() {
	r()
}

// backend is the blocking OS dialog API
type backend interface {
	Load(title, startDir string) (string, error)
	Save(title, startDir string) (string, error)
	YesNo(title, text string) bool
	Info(title, text string)
	Error(title, text string)
}

// Host implements workflow.Dialogs with native dialogs. Each request becomes
// a tea.Cmd collected by Drain; the dialog blocks inside the command and the
// answer is delivered as a ResumeMsg.
type Host struct {
	title    string
	backend  backend
	pending  []tea.Cmd
	inFlight int
}

// New creates a host using the platform dialogs. Pickers offer the text
// extension ext next to "Any File".
func New(title, ext string) *Host {
	return &Host{title: title, backend: sqweekBackend{ext: ext}}
}

// Drain returns the commands queued since the last call
func (h *Host) Drain() tea.Cmd {
	if len(h.pending) == 0 {
		return nil
	}
	cmds := h.pending
	h.pending = nil
	return tea.Batch(cmds...)
}

// Pending reports how many dialogs are waiting to be shown
func (h *Host) Pending() int {
	return len(h.pending)
}

// Busy reports whether a dialog has been requested and not yet answered
func (h *Host) Busy() bool {
	return h.inFlight > 0
}

func (h *Host) queue(cmd tea.Cmd) {
	h.inFlight++
	h.pending = append(h.pending, cmd)
}

// resume wraps an answer so the in-flight count drops on the UI goroutine
func (h *Host) resume(answer func()) ResumeMsg {
	return func() {
		h.inFlight--
		answer()
	}
}

func (h *Host) PickOpenPath(startDir string, answer func(string, bool)) {
	h.queue(func() tea.Msg {
		path, err := h.backend.Load("Open a File", startDir)
		ok := pickSucceeded(path, err)
		return h.resume(func() { answer(path, ok) })
	})
}

// PickSavePath always reports FilterAny: the OS dialog applies its own
// filter and the selection is not exposed.
func (h *Host) PickSavePath(startDir, suggested string, answer func(string, workflow.FilterKind, bool)) {
	h.queue(func() tea.Msg {
		path, err := h.backend.Save("Save As", startDir)
		ok := pickSucceeded(path, err)
		return h.resume(func() { answer(path, workflow.FilterAny, ok) })
	})
}

// Confirm asks two yes/no questions since message boxes have no third button
func (h *Host) Confirm(text string, answer func(workflow.Choice)) {
	h.queue(func() tea.Msg {
		choice := workflow.ChoiceCancel
		if h.backend.YesNo(h.title, text) {
			choice = workflow.ChoiceSave
		} else if h.backend.YesNo(h.title, "Discard unsaved changes?") {
			choice = workflow.ChoiceDiscard
		}
		return h.resume(func() { answer(choice) })
	})
}

func (h *Host) Warn(text string, done func()) {
	h.queue(func() tea.Msg {
		h.backend.Info(h.title, text)
		return h.resume(done)
	})
}

// ShowFatal blocks on an error message box
func ShowFatal(title string, err error) {
	showFatal(sqweekBackend{}, title, err)
}

func showFatal(b backend, title string, err error) {
	text := "An exception was raised"
	if err != nil {
		text += "\n" + err.Error()
	}
	b.Error(title, text)
}

func pickSucceeded(path string, err error) bool {
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			log.Printf("native dialog: %v", err)
		}
		return false
	}
	return path != ""
}

// textFilter returns the picker filter for the text extension ext
func textFilter(ext string) (desc, pattern string) {
	return workflow.FilterText.Label(ext), strings.TrimPrefix(ext, ".")
}

type sqweekBackend struct {
	ext string
}

func (b sqweekBackend) files(title, startDir string) *dialog.FileBuilder {
	desc, pattern := textFilter(b.ext)
	return dialog.File().
		Title(title).
		SetStartDir(startDir).
		Filter(desc, pattern).
		Filter(workflow.FilterAny.Label(b.ext), "*")
}

func (b sqweekBackend) Load(title, startDir string) (string, error) {
	return b.files(title, startDir).Load()
}

func (b sqweekBackend) Save(title, startDir string) (string, error) {
	return b.files(title, startDir).Save()
}

func (sqweekBackend) YesNo(title, text string) bool {
	return dialog.Message("%s", text).Title(title).YesNo()
}

func (sqweekBackend) Info(title, text string) {
	dialog.Message("%s", text).Title(title).Info()
}

func (sqweekBackend) Error(title, text string) {
	dialog.Message("%s", text).Title(title).Error()
}
