package tui

import (
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// currentOS is overridden in tests
var currentOS = func() string { return runtime.GOOS }

// GetOS returns the current operating system type
func GetOS() OSType {
	switch currentOS() {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string // Fallback if OS-specific not defined
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	switch GetOS() {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Keys returns the OS shortcut followed by the default when they differ.
// Both are accepted; only the first is shown in help.
func (s ShortcutKey) Keys() []string {
	primary := s.Get()
	if s.Default == "" || s.Default == primary {
		return []string{primary}
	}
	return []string{primary, s.Default}
}

// Binding builds a key binding for the shortcut with the given help text
func (s ShortcutKey) Binding(help string) key.Binding {
	return key.NewBinding(
		key.WithKeys(s.Keys()...),
		key.WithHelp(FormatShortcutForHelp(s), help),
	)
}

// Shortcuts lists every keyboard shortcut with OS-specific variations
var Shortcuts = struct {
	// File menu
	Open   ShortcutKey
	Save   ShortcutKey
	SaveAs ShortcutKey
	Exit   ShortcutKey

	// Edit menu
	CopyAll ShortcutKey
	Paste   ShortcutKey

	// Dialogs and menus
	Menu       ShortcutKey
	Cancel     ShortcutKey
	Confirm    ShortcutKey
	NextFilter ShortcutKey

	// System
	Quit ShortcutKey
}{
	Open: ShortcutKey{
		Default: "ctrl+o",
	},
	Save: ShortcutKey{
		Mac:     "ctrl+s",
		Linux:   "alt+s", // Avoid Ctrl+S terminal conflict (XOFF)
		Windows: "alt+s", // Consistent with Linux
		Default: "ctrl+s",
	},
	SaveAs: ShortcutKey{
		Default: "f12",
	},
	Exit: ShortcutKey{
		Default: "ctrl+e",
	},
	CopyAll: ShortcutKey{
		Mac:     "ctrl+y",
		Linux:   "alt+c",
		Windows: "alt+c",
		Default: "ctrl+y",
	},
	Paste: ShortcutKey{
		Mac:     "ctrl+v",
		Linux:   "alt+v", // Terminals often swallow ctrl+v
		Windows: "alt+v",
		Default: "ctrl+v",
	},
	Menu: ShortcutKey{
		Mac:     "f10",
		Linux:   "alt+f",
		Windows: "alt+f",
		Default: "f10",
	},
	Cancel: ShortcutKey{
		Default: "esc",
	},
	Confirm: ShortcutKey{
		Default: "enter",
	},
	NextFilter: ShortcutKey{
		Default: "tab",
	},
	Quit: ShortcutKey{
		Default: "ctrl+c",
	},
}

// GetTerminalSetupMessage returns OS-specific terminal setup instructions
func GetTerminalSetupMessage() string {
	switch GetOS() {
	case OSLinux:
		return "TIP: Run 'stty -ixon' so Ctrl+S saves as well as " + FormatShortcutForHelp(Shortcuts.Save)
	case OSWindows:
		return "TIP: For best experience, use Windows Terminal or PowerShell"
	default:
		return ""
	}
}

// FormatShortcutForHelp formats a shortcut key for display in help text
func FormatShortcutForHelp(key ShortcutKey) string {
	shortcut := key.Get()
	// Use M- prefix for Alt on Linux/Windows (common terminal convention)
	if GetOS() == OSLinux || GetOS() == OSWindows {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "M-")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
	}
	shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")
	shortcut = strings.ReplaceAll(shortcut, "shift+", "⇧")

	// Function keys
	if strings.HasPrefix(shortcut, "f") && len(shortcut) <= 3 {
		return strings.ToUpper(shortcut)
	}

	return shortcut
}
