package tui

import (
	"runtime"
	"strings"
	"testing"
)

// withOS pretends to run on goos for the rest of the test
func withOS(t *testing.T, goos string) {
	t.Helper()
	prev := currentOS
	currentOS = func() string { return goos }
	t.Cleanup(func() { currentOS = prev })
}

func TestGetOS(t *testing.T) {
	os := GetOS()

	switch runtime.GOOS {
	case "darwin":
		if os != OSMac {
			t.Errorf("Expected OSMac for darwin, got %v", os)
		}
	case "linux":
		if os != OSLinux {
			t.Errorf("Expected OSLinux for linux, got %v", os)
		}
	case "windows":
		if os != OSWindows {
			t.Errorf("Expected OSWindows for windows, got %v", os)
		}
	}

	withOS(t, "plan9")
	if GetOS() != OSUnknown {
		t.Errorf("Expected OSUnknown for plan9, got %v", GetOS())
	}
}

func TestShortcutKey_Get(t *testing.T) {
	save := ShortcutKey{
		Mac:     "ctrl+s",
		Linux:   "alt+s",
		Windows: "alt+s",
		Default: "ctrl+s",
	}

	tests := []struct {
		name     string
		goos     string
		shortcut ShortcutKey
		want     string
	}{
		{name: "Mac specific shortcut", goos: "darwin", shortcut: save, want: "ctrl+s"},
		{name: "Linux specific shortcut", goos: "linux", shortcut: save, want: "alt+s"},
		{name: "Windows specific shortcut", goos: "windows", shortcut: save, want: "alt+s"},
		{name: "Unknown OS uses default", goos: "freebsd", shortcut: save, want: "ctrl+s"},
		{name: "Default only shortcut", goos: "linux", shortcut: ShortcutKey{Default: "f12"}, want: "f12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withOS(t, tt.goos)
			if got := tt.shortcut.Get(); got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortcutKey_Keys(t *testing.T) {
	withOS(t, "linux")

	keys := Shortcuts.Save.Keys()
	if len(keys) != 2 || keys[0] != "alt+s" || keys[1] != "ctrl+s" {
		t.Errorf("Save keys on Linux = %v, want [alt+s ctrl+s]", keys)
	}

	keys = Shortcuts.Open.Keys()
	if len(keys) != 1 || keys[0] != "ctrl+o" {
		t.Errorf("Open keys = %v, want [ctrl+o]", keys)
	}
}

func TestActualShortcuts(t *testing.T) {
	shortcuts := []struct {
		name string
		key  ShortcutKey
	}{
		{"Open", Shortcuts.Open},
		{"Save", Shortcuts.Save},
		{"SaveAs", Shortcuts.SaveAs},
		{"Exit", Shortcuts.Exit},
		{"CopyAll", Shortcuts.CopyAll},
		{"Paste", Shortcuts.Paste},
		{"Menu", Shortcuts.Menu},
		{"Cancel", Shortcuts.Cancel},
		{"Confirm", Shortcuts.Confirm},
		{"NextFilter", Shortcuts.NextFilter},
		{"Quit", Shortcuts.Quit},
	}

	for _, s := range shortcuts {
		t.Run(s.name, func(t *testing.T) {
			if s.key.Default == "" {
				t.Errorf("%s should have a Default value set", s.name)
			}
			if s.key.Get() == "" {
				t.Errorf("%s shortcut returned empty string", s.name)
			}
		})
	}
}

func TestProblematicShortcuts(t *testing.T) {
	// Ctrl+S is XOFF and Ctrl+V is often swallowed by the terminal
	for _, s := range []struct {
		name string
		key  ShortcutKey
	}{
		{"Save", Shortcuts.Save},
		{"Paste", Shortcuts.Paste},
	} {
		t.Run(s.name, func(t *testing.T) {
			if !strings.HasPrefix(s.key.Linux, "alt+") {
				t.Errorf("%s Linux shortcut should use alt+, got %s", s.name, s.key.Linux)
			}
		})
	}
}

func TestFormatShortcutForHelp(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		shortcut ShortcutKey
		want     string
	}{
		{name: "ctrl", goos: "linux", shortcut: ShortcutKey{Default: "ctrl+o"}, want: "^o"},
		{name: "alt on Linux", goos: "linux", shortcut: Shortcuts.Save, want: "M-s"},
		{name: "ctrl on Mac", goos: "darwin", shortcut: Shortcuts.Save, want: "^s"},
		{name: "alt on Mac", goos: "darwin", shortcut: ShortcutKey{Default: "alt+f"}, want: "⌥f"},
		{name: "function key", goos: "linux", shortcut: Shortcuts.SaveAs, want: "F12"},
		{name: "shift", goos: "linux", shortcut: ShortcutKey{Default: "shift+tab"}, want: "⇧tab"},
		{name: "plain", goos: "linux", shortcut: Shortcuts.Cancel, want: "esc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withOS(t, tt.goos)
			if got := FormatShortcutForHelp(tt.shortcut); got != tt.want {
				t.Errorf("FormatShortcutForHelp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetTerminalSetupMessage(t *testing.T) {
	withOS(t, "linux")
	if msg := GetTerminalSetupMessage(); msg != "TIP: Run 'stty -ixon' so Ctrl+S saves as well as M-s" {
		t.Errorf("unexpected Linux setup message: %s", msg)
	}

	withOS(t, "darwin")
	if msg := GetTerminalSetupMessage(); msg != "" {
		t.Errorf("Expected empty setup message on macOS, got: %s", msg)
	}

	withOS(t, "windows")
	if msg := GetTerminalSetupMessage(); !strings.Contains(msg, "Windows Terminal") {
		t.Errorf("Windows setup message should mention Windows Terminal, got: %s", msg)
	}
}
