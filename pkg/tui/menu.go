package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuAction identifies what a menu entry does
type MenuAction int

const (
	ActionNone MenuAction = iota
	ActionOpen
	ActionSave
	ActionSaveAs
	ActionExit
	ActionCopyAll
	ActionPaste
)

// MenuItem is one entry of a drop-down menu. A separator has no label.
type MenuItem struct {
	Label    string
	Shortcut ShortcutKey
	Action   MenuAction
}

// IsSeparator reports whether the item is a separator line
func (i MenuItem) IsSeparator() bool {
	return i.Label == ""
}

// Menu is a titled drop-down
type Menu struct {
	Title string
	Items []MenuItem
}

// DefaultMenus returns the File and Edit menus
func DefaultMenus() []Menu {
	return []Menu{
		{
			Title: "File",
			Items: []MenuItem{
				{Label: "Open", Shortcut: Shortcuts.Open, Action: ActionOpen},
				{},
				{Label: "Save", Shortcut: Shortcuts.Save, Action: ActionSave},
				{Label: "Save As", Shortcut: Shortcuts.SaveAs, Action: ActionSaveAs},
				{},
				{Label: "Exit", Shortcut: Shortcuts.Exit, Action: ActionExit},
			},
		},
		{
			Title: "Edit",
			Items: []MenuItem{
				{Label: "Copy All", Shortcut: Shortcuts.CopyAll, Action: ActionCopyAll},
				{Label: "Paste", Shortcut: Shortcuts.Paste, Action: ActionPaste},
			},
		},
	}
}

// MenuBarModel is the menu bar with one open drop-down at a time
type MenuBarModel struct {
	menus   []Menu
	open    bool
	menuIdx int
	itemIdx int
}

// NewMenuBar creates a closed menu bar
func NewMenuBar(menus []Menu) *MenuBarModel {
	return &MenuBarModel{menus: menus}
}

// Open drops down the first menu
func (m *MenuBarModel) Open() {
	m.open = true
	m.menuIdx = 0
	m.itemIdx = m.firstSelectable(0)
}

// Close hides the drop-down
func (m *MenuBarModel) Close() {
	m.open = false
}

// IsOpen reports whether a drop-down is shown
func (m *MenuBarModel) IsOpen() bool {
	return m.open
}

// Current returns the highlighted item
func (m *MenuBarModel) Current() MenuItem {
	return m.menus[m.menuIdx].Items[m.itemIdx]
}

// Update navigates the open menu and returns the chosen action, if any
func (m *MenuBarModel) Update(msg tea.KeyMsg) MenuAction {
	if !m.open {
		return ActionNone
	}

	switch {
	case key.Matches(msg, modalKeys.Cancel, modalKeys.Menu):
		m.Close()
		return ActionNone
	case key.Matches(msg, modalKeys.Press):
		action := m.Current().Action
		m.Close()
		return action
	}

	switch msg.String() {
	case "left":
		m.menuIdx = (m.menuIdx + len(m.menus) - 1) % len(m.menus)
		m.itemIdx = m.firstSelectable(0)
	case "right", "tab":
		m.menuIdx = (m.menuIdx + 1) % len(m.menus)
		m.itemIdx = m.firstSelectable(0)
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	default:
		// Mnemonic: first letter of an item
		for i, item := range m.menus[m.menuIdx].Items {
			if !item.IsSeparator() && strings.EqualFold(item.Label[:1], msg.String()) {
				m.itemIdx = i
				m.Close()
				return item.Action
			}
		}
	}

	return ActionNone
}

func (m *MenuBarModel) move(delta int) {
	items := m.menus[m.menuIdx].Items
	i := m.itemIdx
	for range items {
		i = (i + delta + len(items)) % len(items)
		if !items[i].IsSeparator() {
			m.itemIdx = i
			return
		}
	}
}

func (m *MenuBarModel) firstSelectable(from int) int {
	for i := from; i < len(m.menus[m.menuIdx].Items); i++ {
		if !m.menus[m.menuIdx].Items[i].IsSeparator() {
			return i
		}
	}
	return 0
}

// ViewBar renders the single menu bar line with title on the right
func (m *MenuBarModel) ViewBar(theme Theme, width int, title string) string {
	titles := make([]string, 0, len(m.menus))
	for i, menu := range m.menus {
		style := theme.MenuTitle
		if m.open && i == m.menuIdx {
			style = theme.MenuActive
		}
		titles = append(titles, style.Render(menu.Title))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, titles...)

	right := theme.Header.Render(title)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return theme.MenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// ViewDropDown renders the open menu's items, or "" when closed
func (m *MenuBarModel) ViewDropDown(theme Theme) string {
	if !m.open {
		return ""
	}

	items := m.menus[m.menuIdx].Items
	labelWidth := 0
	for _, item := range items {
		if w := lipgloss.Width(item.Label); w > labelWidth {
			labelWidth = w
		}
	}
	hintWidth := 0
	for _, item := range items {
		if item.IsSeparator() {
			continue
		}
		if w := lipgloss.Width(FormatShortcutForHelp(item.Shortcut)); w > hintWidth {
			hintWidth = w
		}
	}

	rows := make([]string, 0, len(items))
	for i, item := range items {
		if item.IsSeparator() {
			rows = append(rows, theme.MenuHint.Render(strings.Repeat("─", labelWidth+hintWidth+4)))
			continue
		}
		hint := FormatShortcutForHelp(item.Shortcut)
		line := item.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(item.Label)+2) +
			strings.Repeat(" ", hintWidth-lipgloss.Width(hint)) + hint
		style := theme.MenuItem
		if i == m.itemIdx {
			style = theme.MenuSelected
		}
		rows = append(rows, style.Render(line))
	}

	offset := 0
	for i := 0; i < m.menuIdx; i++ {
		offset += lipgloss.Width(theme.MenuTitle.Render(m.menus[i].Title))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return lipgloss.NewStyle().MarginLeft(offset).Render(box)
}
