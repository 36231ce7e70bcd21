package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pluqqy/padbook/pkg/models"
	"github.com/pluqqy/padbook/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T, settings *models.Settings, opts ...Option) *App {
	t.Helper()
	app, err := NewApp(settings, opts...)
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app
}

func send(app *App, msgs ...tea.Msg) {
	for _, msg := range msgs {
		app.Update(msg)
	}
}

func typeText(app *App, text string) {
	for _, r := range text {
		app.Update(keyRunes(string(r)))
	}
}

func TestApp_TypingMarksDocumentDirty(t *testing.T) {
	app := newTestApp(t, nil)
	assert.Equal(t, "Untitled — Padbook", app.title)

	typeText(app, "hello")

	assert.Equal(t, "hello", app.Document().Text())
	assert.True(t, app.Document().IsDirty())
	assert.Equal(t, "Untitled*", app.Document().DisplayName())
	assert.Equal(t, "Untitled* — Padbook", app.title)
	assert.Contains(t, app.View(), "Modified")
}

func TestApp_SaveUntitledAsksForName(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, nil)
	typeText(app, "hello")

	send(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, app.host.saveAs.Active())
	assert.Equal(t, workflow.FilterText, app.host.saveAs.Filter())

	app.host.saveAs.input.SetValue(filepath.Join(dir, "note"))
	send(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, app.host.Active())
	raw, err := os.ReadFile(filepath.Join(dir, "note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))
	assert.False(t, app.Document().IsDirty())
	assert.Equal(t, "note.txt — Padbook", app.title)

	status, ok := app.status.GetStatus()
	assert.True(t, ok)
	assert.Contains(t, status, "Saved 5 B to note.txt")
}

func TestApp_SaveAsAnyFilterKeepsName(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, nil)
	typeText(app, "x")

	send(app, tea.KeyMsg{Type: tea.KeyF12})
	require.True(t, app.host.saveAs.Active())
	send(app, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, workflow.FilterAny, app.host.saveAs.Filter())

	app.host.saveAs.input.SetValue(filepath.Join(dir, "data"))
	send(app, tea.KeyMsg{Type: tea.KeyEnter})

	path, ok := app.Document().Path()
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "data"), path)
	_, err := os.Stat(filepath.Join(dir, "data.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestApp_SaveAsEscCancels(t *testing.T) {
	app := newTestApp(t, nil)
	typeText(app, "x")

	send(app, tea.KeyMsg{Type: tea.KeyF12}, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, app.host.Active())
	assert.True(t, app.Document().IsDirty())
	assert.False(t, app.Document().HasBackingFile())
}

func TestApp_SaveFailureShowsWarning(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing", "note.txt")
	app := newTestApp(t, nil)
	typeText(app, "hello")

	send(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	app.host.saveAs.input.SetValue(bad)
	send(app, tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, app.host.message.Active())
	assert.Equal(t, "Padbook could not save the text at "+bad+".", app.host.message.Text())
	assert.True(t, app.Document().IsDirty())
	assert.False(t, app.Document().HasBackingFile())

	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, app.host.Active())
}

func TestApp_OpenWithDiscard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0644))

	app := newTestApp(t, nil)
	typeText(app, "draft")

	send(app, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.True(t, app.host.confirm.Active())
	assert.Equal(t, "Would you like to save this file? Before opening a file..", app.host.confirm.config.Message)

	send(app, keyRunes("d"))
	require.True(t, app.host.open.Active())

	app.host.open.finish(path, true)

	assert.Equal(t, "from disk", app.Document().Text())
	assert.Equal(t, "from disk", app.editor.Value())
	assert.False(t, app.Document().IsDirty())
	assert.Equal(t, "other.txt — Padbook", app.title)
}

func TestApp_OpenCancelLeavesDocument(t *testing.T) {
	app := newTestApp(t, nil)
	typeText(app, "draft")

	send(app, tea.KeyMsg{Type: tea.KeyCtrlO}, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, app.host.Active())
	assert.Equal(t, "draft", app.Document().Text())
	assert.True(t, app.Document().IsDirty())
}

func TestApp_OpenPickerEscIsNoOp(t *testing.T) {
	app := newTestApp(t, nil)

	send(app, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.True(t, app.host.open.Active())
	send(app, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, app.host.Active())
	assert.False(t, app.Document().HasBackingFile())
}

func TestApp_Exit(t *testing.T) {
	t.Run("clean document quits immediately", func(t *testing.T) {
		app := newTestApp(t, nil)

		send(app, tea.KeyMsg{Type: tea.KeyCtrlE})

		assert.True(t, app.Quitting())
		assert.Equal(t, "", app.View())
	})

	t.Run("dirty document asks first and cancel keeps window", func(t *testing.T) {
		app := newTestApp(t, nil)
		typeText(app, "draft")

		send(app, tea.KeyMsg{Type: tea.KeyCtrlE})
		require.True(t, app.host.confirm.Active())
		assert.Contains(t, app.host.confirm.config.Message, "Before closing.")

		send(app, keyRunes("c"))
		assert.False(t, app.Quitting())
		assert.False(t, app.host.Active())
	})

	t.Run("window close goes through the guard", func(t *testing.T) {
		app := newTestApp(t, nil)
		typeText(app, "draft")

		send(app, tea.KeyMsg{Type: tea.KeyCtrlC})
		require.True(t, app.host.confirm.Active())

		send(app, keyRunes("n"))
		assert.True(t, app.Quitting())
	})

	t.Run("save choice with cancelled picker does not quit", func(t *testing.T) {
		app := newTestApp(t, nil)
		typeText(app, "draft")

		send(app, tea.KeyMsg{Type: tea.KeyCtrlE}, keyRunes("s"))
		require.True(t, app.host.saveAs.Active())
		send(app, tea.KeyMsg{Type: tea.KeyEsc})

		assert.False(t, app.Quitting())
	})

	t.Run("continue-after-failed-save quits anyway", func(t *testing.T) {
		settings := models.DefaultSettings()
		settings.Workflow.ContinueAfterFailedSave = true
		app := newTestApp(t, settings)
		typeText(app, "draft")

		send(app, tea.KeyMsg{Type: tea.KeyCtrlE}, keyRunes("s"))
		require.True(t, app.host.saveAs.Active())
		send(app, tea.KeyMsg{Type: tea.KeyEsc})

		assert.True(t, app.Quitting())
	})
}

func TestApp_MenuNavigation(t *testing.T) {
	app := newTestApp(t, nil)
	typeText(app, "x")

	send(app, tea.KeyMsg{Type: tea.KeyF10})
	require.True(t, app.menu.IsOpen())
	assert.Equal(t, "Open", app.menu.Current().Label)
	assert.Contains(t, app.View(), "Save As")

	send(app, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "Save", app.menu.Current().Label)

	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, app.menu.IsOpen())
	assert.True(t, app.host.saveAs.Active())
	assert.Equal(t, "x", app.Document().Text(), "menu keys must not reach the editor")
}

func TestApp_Clipboard(t *testing.T) {
	var copied string
	app := newTestApp(t, nil)
	app.clip = clipboardAccess{
		read:  func() (string, error) { return " pasted", nil },
		write: func(s string) error { copied = s; return nil },
	}
	typeText(app, "one")

	app.run(ActionCopyAll)
	assert.Equal(t, "one", copied)

	app.run(ActionPaste)
	assert.Equal(t, "one pasted", app.Document().Text())
	assert.True(t, app.Document().IsDirty())
	status, _ := app.status.GetStatus()
	assert.Equal(t, "ℹ Pasted 1 lines", status)

	app.clip.write = func(string) error { return errors.New("no clipboard") }
	app.run(ActionCopyAll)
	status, _ = app.status.GetStatus()
	assert.Contains(t, status, "Clipboard unavailable")
}

func TestApp_TabInsertsSpaces(t *testing.T) {
	settings := models.DefaultSettings()
	settings.Editor.TabWidth = 2
	app := newTestApp(t, settings)

	send(app, tea.KeyMsg{Type: tea.KeyTab})
	typeText(app, "x")

	assert.Equal(t, "  x", app.Document().Text())
	assert.True(t, app.Document().IsDirty())
}

func TestApp_InitialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "start.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two"), 0644))

	app := newTestApp(t, nil, WithInitialFile(path))

	assert.Equal(t, "line one\nline two", app.editor.Value())
	assert.Equal(t, "start.txt — Padbook", app.title)
	assert.False(t, app.Document().IsDirty())

	missing := filepath.Join(dir, "missing.txt")
	app = newTestApp(t, nil, WithInitialFile(missing))
	require.True(t, app.host.message.Active())
	assert.True(t, strings.HasPrefix(app.host.message.Text(), "Padbook could not open the file: "))
	assert.False(t, app.Document().HasBackingFile())
}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("l%d", i+1)
	}
	return strings.Join(lines, "\n")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestApp_OpenRefusesFileLongerThanEditor(t *testing.T) {
	content := numberedLines(maxEditorLines + 50)
	path := writeFile(t, t.TempDir(), "big.txt", content)

	app := newTestApp(t, nil, WithInitialFile(path))

	require.True(t, app.host.message.Active())
	assert.Equal(t, "Padbook could not open the file: "+path+".", app.host.message.Text())
	status, _ := app.status.GetStatus()
	assert.Equal(t, "⚠ big.txt: 10,050 lines, the editor holds 10,000", status)
	assert.False(t, app.Document().HasBackingFile())
	assert.Equal(t, "", app.editor.Value())

	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	typeText(app, "x")
	send(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, app.host.saveAs.Active(), "the refused file never becomes the save target")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))
}

func TestApp_FullEditorSavesEveryLine(t *testing.T) {
	content := numberedLines(maxEditorLines)
	path := writeFile(t, t.TempDir(), "full.txt", content)

	app := newTestApp(t, nil, WithInitialFile(path))
	require.False(t, app.host.Active())
	assert.Equal(t, content, app.editor.Value())

	typeText(app, "x")
	send(app, tea.KeyMsg{Type: tea.KeyCtrlS})

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content+"x", string(raw))
}

func TestApp_CRLFFileKeepsLineEndings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dos.txt", "a\r\nc")

	app := newTestApp(t, nil, WithInitialFile(path))
	assert.Equal(t, "a\nc", app.editor.Value())

	typeText(app, "x")
	assert.True(t, app.Document().IsDirty())
	send(app, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.False(t, app.Document().IsDirty(), "undoing the edit restores the clean state")
	assert.Equal(t, "dos.txt — Padbook", app.title)

	typeText(app, "x")
	send(app, tea.KeyMsg{Type: tea.KeyCtrlS})

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\r\ncx", string(raw))
	assert.False(t, app.Document().IsDirty())
}

func TestApp_OpenRefusesTextTheEditorWouldAlter(t *testing.T) {
	dir := t.TempDir()
	kept := writeFile(t, dir, "kept.txt", "kept")

	tests := []struct {
		name    string
		file    string
		content string
		status  string
	}{
		{name: "tabs", file: "tab.txt", content: "a\tb\r\nc", status: "⚠ tab.txt: tab characters would be turned into spaces"},
		{name: "control characters", file: "bell.txt", content: "ding\a", status: "⚠ bell.txt: contains characters the editor cannot show"},
		{name: "mixed line endings", file: "mixed.txt", content: "a\r\nb\nc", status: "⚠ mixed.txt: file mixes LF and CRLF line endings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			app := newTestApp(t, nil, WithInitialFile(kept))

			app.flow.OpenPath(path)

			require.True(t, app.host.message.Active())
			assert.Equal(t, "Padbook could not open the file: "+path+".", app.host.message.Text())
			status, _ := app.status.GetStatus()
			assert.Equal(t, tt.status, status)

			current, _ := app.Document().Path()
			assert.Equal(t, kept, current)
			assert.Equal(t, "kept", app.editor.Value())
			assert.False(t, app.Document().IsDirty())
		})
	}
}

func TestApp_LineNumbersStayAligned(t *testing.T) {
	path := writeFile(t, t.TempDir(), "twelve.txt", numberedLines(12))

	app := newTestApp(t, nil, WithInitialFile(path))
	assert.Equal(t, maxEditorLines, app.editor.MaxHeight)

	var nine, ten string
	for _, row := range strings.Split(app.View(), "\n") {
		switch {
		case strings.Contains(row, "l10"):
			ten = row
		case strings.Contains(row, "l9"):
			nine = row
		}
	}
	require.NotEmpty(t, nine)
	require.NotEmpty(t, ten)
	assert.Equal(t, strings.Index(nine, "l9"), strings.Index(ten, "l10"))
	assert.Contains(t, ten, "   10 l10")
}

func TestApp_TextExtensionSetting(t *testing.T) {
	dir := t.TempDir()
	settings := models.DefaultSettings()
	settings.Editor.TextExtension = ".md"
	app := newTestApp(t, settings)

	send(app, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.True(t, app.host.open.Active())
	assert.Equal(t, []string{".md"}, app.host.open.picker.AllowedTypes)
	assert.Contains(t, app.View(), "Text File (*.md)")
	send(app, tea.KeyMsg{Type: tea.KeyEsc})

	typeText(app, "x")
	send(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	app.host.saveAs.input.SetValue(filepath.Join(dir, "notes"))
	send(app, tea.KeyMsg{Type: tea.KeyEnter})

	raw, err := os.ReadFile(filepath.Join(dir, "notes.md"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(raw))
}

func TestApp_TerminalTipUntilFirstKey(t *testing.T) {
	withOS(t, "linux")
	app := newTestApp(t, nil)

	assert.Contains(t, app.View(), "stty -ixon")

	typeText(app, "a")
	assert.NotContains(t, app.View(), "stty -ixon")
}

func TestNewApp_InvalidSettings(t *testing.T) {
	settings := models.DefaultSettings()
	settings.UI.Theme.Accent = "not-a-colour"

	app, err := NewApp(settings)

	assert.Error(t, err)
	assert.Nil(t, app)
}

// fakeNative answers dialogs through resume messages like an OS dialog host
type fakeNative struct {
	choice  workflow.Choice
	pending []tea.Cmd
	resumes []fakeResume
	busy    int
}

type fakeResume func()

func (r fakeResume) Resume() { r() }

func (f *fakeNative) queue(answer func()) {
	f.busy++
	resume := fakeResume(func() {
		f.busy--
		answer()
	})
	f.resumes = append(f.resumes, resume)
	f.pending = append(f.pending, func() tea.Msg { return resume })
}

func (f *fakeNative) PickOpenPath(_ string, answer func(string, bool)) {
	f.queue(func() { answer("", false) })
}

func (f *fakeNative) PickSavePath(_, _ string, answer func(string, workflow.FilterKind, bool)) {
	f.queue(func() { answer("", workflow.FilterAny, false) })
}

func (f *fakeNative) Confirm(_ string, answer func(workflow.Choice)) {
	f.queue(func() { answer(f.choice) })
}

func (f *fakeNative) Warn(_ string, done func()) {
	f.queue(done)
}

func (f *fakeNative) Drain() tea.Cmd {
	cmds := f.pending
	f.pending = nil
	return tea.Batch(cmds...)
}

func (f *fakeNative) Busy() bool {
	return f.busy > 0
}

func TestApp_NativeDialogs(t *testing.T) {
	native := &fakeNative{choice: workflow.ChoiceDiscard}
	app := newTestApp(t, nil, WithNativeDialogs(native))
	typeText(app, "draft")

	send(app, tea.KeyMsg{Type: tea.KeyCtrlE})
	require.True(t, native.Busy())
	require.Len(t, native.resumes, 1)
	assert.Empty(t, native.pending, "queued dialogs are handed to the program")
	assert.False(t, app.host.Active(), "terminal dialogs stay hidden")

	typeText(app, "ignored")
	assert.Equal(t, "draft", app.Document().Text(), "keys are ignored while a native dialog is open")

	send(app, native.resumes[0])

	assert.False(t, native.Busy())
	assert.True(t, app.Quitting())
}
