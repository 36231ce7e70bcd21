package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pluqqy/padbook/pkg/document"
	"github.com/pluqqy/padbook/pkg/models"
	"github.com/pluqqy/padbook/pkg/workflow"
)

type keyMap struct {
	Open    key.Binding
	Save    key.Binding
	SaveAs  key.Binding
	Exit    key.Binding
	CopyAll key.Binding
	Paste   key.Binding
	Menu    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Open:    Shortcuts.Open.Binding("open"),
		Save:    Shortcuts.Save.Binding("save"),
		SaveAs:  Shortcuts.SaveAs.Binding("save as"),
		Exit:    Shortcuts.Exit.Binding("exit"),
		CopyAll: Shortcuts.CopyAll.Binding("copy all"),
		Paste:   Shortcuts.Paste.Binding("paste"),
		Menu:    Shortcuts.Menu.Binding("menu"),
		Quit:    Shortcuts.Quit.Binding("quit"),
	}
}

// modalKeyMap holds the keys read by dialogs and the open menu
type modalKeyMap struct {
	Cancel     key.Binding
	Confirm    key.Binding
	Press      key.Binding // buttons, menu items and messages also take space
	NextFilter key.Binding
	Menu       key.Binding
}

func newModalKeyMap() modalKeyMap {
	return modalKeyMap{
		Cancel:  Shortcuts.Cancel.Binding("close"),
		Confirm: Shortcuts.Confirm.Binding("ok"),
		Press: key.NewBinding(
			key.WithKeys(append(Shortcuts.Confirm.Keys(), " ")...),
			key.WithHelp(FormatShortcutForHelp(Shortcuts.Confirm), "ok"),
		),
		NextFilter: Shortcuts.NextFilter.Binding("change type"),
		Menu:       Shortcuts.Menu.Binding("menu"),
	}
}

var modalKeys = newModalKeyMap()

// clipboardAccess is swapped in tests
type clipboardAccess struct {
	read  func() (string, error)
	write func(string) error
}

// Option configures an App
type Option func(*App)

// WithInitialFile opens path once the app is constructed
func WithInitialFile(path string) Option {
	return func(a *App) {
		a.initialPath = path
	}
}

// NativeDialogs shows dialogs outside the terminal. Requests are turned into
// commands by Drain; answers arrive as messages implementing Resume.
type NativeDialogs interface {
	workflow.Dialogs
	Drain() tea.Cmd
	Busy() bool
}

type resumer interface {
	Resume()
}

// WithNativeDialogs routes every dialog to OS-native message boxes and pickers
func WithNativeDialogs(host NativeDialogs) Option {
	return func(a *App) {
		a.native = host
	}
}

// App is the single editor window
type App struct {
	settings *models.Settings
	theme    Theme
	keys     keyMap

	doc    *document.Document
	flow   *workflow.Workflow
	editor textarea.Model
	menu   *MenuBarModel
	host   *dialogHost
	native NativeDialogs
	status *StatusManager
	clip   clipboardAccess

	width       int
	height      int
	quitting    bool
	title       string
	initialPath string
	pending     []tea.Cmd
}

// NewApp builds the window. An error here is a startup failure.
func NewApp(settings *models.Settings, opts ...Option) (*App, error) {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	a := &App{
		settings: settings,
		theme:    NewTheme(settings.UI.Theme),
		keys:     newKeyMap(),
		doc:      document.New(),
		menu:     NewMenuBar(DefaultMenus()),
		host:     newDialogHost(settings.Editor.TextExtension),
		status:   NewStatusManager(),
		clip:     clipboardAccess{read: clipboard.ReadAll, write: clipboard.WriteAll},
	}
	for _, opt := range opts {
		opt(a)
	}

	ta := newEditor(settings.Editor.ShowLineNumbers)
	ta.Placeholder = "Start typing…"
	ta.SetWidth(80)
	ta.SetHeight(20)
	ta.Focus()
	a.editor = ta

	policy := workflow.AbortUnlessSaved
	if settings.Workflow.ContinueAfterFailedSave {
		policy = workflow.ContinueAlways
	}

	var dialogs workflow.Dialogs = a.host
	if a.native != nil {
		dialogs = a.native
	}

	a.flow = workflow.New(a.doc, dialogs, workflow.Options{
		Policy:        policy,
		TextExtension: settings.Editor.TextExtension,
		Quit:          a.quit,
		Status: func(msg string) {
			a.pending = append(a.pending, a.status.ShowSuccess(msg))
		},
		Editable: editable,
		Problem: func(msg string) {
			a.pending = append(a.pending, a.status.ShowWarning(msg))
		},
	})
	a.doc.SetChangeListener(a.documentChanged)
	a.title = a.doc.Title(workflow.AppTitle)
	a.status.SetPersistentMessage(GetTerminalSetupMessage())

	if a.initialPath != "" {
		a.flow.OpenPath(a.initialPath)
	}

	return a, nil
}

// Document returns the edited document
func (a *App) Document() *document.Document {
	return a.doc
}

// Workflow returns the save workflow driving the window
func (a *App) Workflow() *workflow.Workflow {
	return a.flow
}

// Quitting reports whether Exit has been allowed
func (a *App) Quitting() bool {
	return a.quitting
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		tea.SetWindowTitle(a.title),
		a.drain(),
	)
}

func (a *App) quit() {
	a.quitting = true
	log.Printf("exit")
	a.pending = append(a.pending, tea.Quit)
}

// documentChanged keeps the text area and window title in step with the
// document after loads, saves and edits.
func (a *App) documentChanged() {
	if a.editor.Value() != a.doc.Text() {
		a.editor.SetValue(a.doc.Text())
		if a.editor.Value() != a.doc.Text() {
			log.Printf("editor: text area altered the document text")
		}
	}

	if title := a.doc.Title(workflow.AppTitle); title != a.title {
		a.title = title
		a.pending = append(a.pending, tea.SetWindowTitle(title))
	}
}

func (a *App) drain() tea.Cmd {
	cmds := a.pending
	a.pending = nil
	cmds = append(cmds, a.host.Drain())
	if a.native != nil {
		cmds = append(cmds, a.native.Drain())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)

	case resumer:
		msg.Resume()

	case ClearStatusMsg:
		// Expired messages are dropped on render

	case tea.KeyMsg:
		a.handleKey(msg)

	default:
		if a.host.Active() {
			a.host.Update(msg)
		} else {
			var cmd tea.Cmd
			a.editor, cmd = a.editor.Update(msg)
			a.pending = append(a.pending, cmd)
		}
	}

	return a, a.drain()
}

func (a *App) handleKey(msg tea.KeyMsg) {
	// The setup tip stays until the first key press
	a.status.SetPersistentMessage("")

	if a.host.Active() {
		a.host.Update(msg)
		return
	}

	// A native dialog is modal for the whole window
	if a.native != nil && a.native.Busy() {
		return
	}

	// Window close goes through Exit, like any other way of leaving
	if key.Matches(msg, a.keys.Quit) {
		a.menu.Close()
		a.flow.Exit()
		return
	}

	if a.menu.IsOpen() {
		a.run(a.menu.Update(msg))
		return
	}

	switch {
	case key.Matches(msg, a.keys.Menu):
		a.menu.Open()
	case key.Matches(msg, a.keys.Open):
		a.run(ActionOpen)
	case key.Matches(msg, a.keys.Save):
		a.run(ActionSave)
	case key.Matches(msg, a.keys.SaveAs):
		a.run(ActionSaveAs)
	case key.Matches(msg, a.keys.Exit):
		a.run(ActionExit)
	case key.Matches(msg, a.keys.CopyAll):
		a.run(ActionCopyAll)
	case key.Matches(msg, a.keys.Paste):
		a.run(ActionPaste)
	case msg.Type == tea.KeyTab:
		// Soft tabs; the text area has no tab key of its own
		a.insertText(strings.Repeat(" ", a.settings.Editor.TabWidth))
	default:
		a.updateEditor(msg)
	}
}

func (a *App) updateEditor(msg tea.Msg) {
	before := a.editor.Value()

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	a.pending = append(a.pending, cmd)

	if after := a.editor.Value(); after != before {
		a.doc.OnTextChanged(after)
	}
}

func (a *App) run(action MenuAction) {
	switch action {
	case ActionOpen:
		a.flow.Open()
	case ActionSave:
		a.flow.UserSave(nil)
	case ActionSaveAs:
		a.flow.SaveAs(nil)
	case ActionExit:
		a.flow.Exit()
	case ActionCopyAll:
		a.copyAll()
	case ActionPaste:
		a.paste()
	}
}

func (a *App) copyAll() {
	text := a.doc.Text()
	if err := a.clip.write(text); err != nil {
		log.Printf("clipboard: %v", err)
		a.pending = append(a.pending, a.status.ShowError("Clipboard unavailable"))
		return
	}
	a.pending = append(a.pending, a.status.ShowSuccess(fmt.Sprintf("Copied %d lines", countLines(text))))
}

func (a *App) paste() {
	text, err := a.clip.read()
	if err != nil {
		log.Printf("clipboard: %v", err)
		a.pending = append(a.pending, a.status.ShowError("Clipboard unavailable"))
		return
	}
	a.insertText(text)
	if text != "" {
		a.pending = append(a.pending, a.status.ShowInfo(fmt.Sprintf("Pasted %d lines", countLines(text))))
	}
}

func (a *App) insertText(text string) {
	if text == "" {
		return
	}

	before := a.editor.Value()
	a.editor.InsertString(text)
	if after := a.editor.Value(); after != before {
		a.doc.OnTextChanged(after)
	}
}

func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height

	// menu bar (1) + editor border (2) + status (1) + help (1)
	editorHeight := height - 5
	if editorHeight < 1 {
		editorHeight = 1
	}
	editorWidth := width - 2
	if a.settings.Editor.ShowLineNumbers {
		editorWidth -= gutterOverflow
	}
	if editorWidth < 10 {
		editorWidth = 10
	}
	a.editor.SetWidth(editorWidth)
	a.editor.SetHeight(editorHeight)
	a.host.open.SetHeight(height - 14)
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	bar := a.menu.ViewBar(a.theme, a.width, a.title)

	var body string
	switch {
	case a.host.Active():
		body = lipgloss.Place(a.width, a.height-3, lipgloss.Center, lipgloss.Center,
			a.host.View(a.theme, a.width))
	case a.menu.IsOpen():
		body = lipgloss.JoinVertical(lipgloss.Left,
			a.menu.ViewDropDown(a.theme),
			a.theme.EditorBorder.Render(a.editor.View()))
	default:
		body = a.theme.EditorBorder.Render(a.editor.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, bar, body, a.statusLine(), a.helpLine())
}

func (a *App) statusLine() string {
	var parts []string
	if msg, ok := a.status.GetStatus(); ok {
		parts = append(parts, msg)
	}
	if a.doc.IsDirty() {
		parts = append(parts, a.theme.StatusDirty.Render("Modified"))
	}
	parts = append(parts, fmt.Sprintf("Ln %d", a.editor.Line()+1))
	return a.theme.Status.Width(a.width).Render(strings.Join(parts, "  │  "))
}

func (a *App) helpLine() string {
	bindings := []key.Binding{a.keys.Menu, a.keys.Open, a.keys.Save, a.keys.SaveAs, a.keys.Exit}
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return a.theme.Help.Render(strings.Join(hints, " · "))
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
