package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Settings represents the application configuration
type Settings struct {
	Editor   EditorSettings   `yaml:"editor" json:"editor"`
	UI       UISettings       `yaml:"ui" json:"ui"`
	Dialogs  DialogSettings   `yaml:"dialogs" json:"dialogs"`
	Workflow WorkflowSettings `yaml:"workflow" json:"workflow"`
}

// EditorSettings controls the text area
type EditorSettings struct {
	ShowLineNumbers bool   `yaml:"show_line_numbers" json:"show_line_numbers"`
	TabWidth        int    `yaml:"tab_width" json:"tab_width"`
	TextExtension   string `yaml:"text_extension" json:"text_extension"`
}

// UISettings controls UI preferences
type UISettings struct {
	Theme ThemeSettings `yaml:"theme" json:"theme"`
}

// ThemeSettings holds lipgloss colours (ANSI 0-255 or #rrggbb)
type ThemeSettings struct {
	Accent  string `yaml:"accent" json:"accent"`
	Warning string `yaml:"warning" json:"warning"`
	Danger  string `yaml:"danger" json:"danger"`
	Border  string `yaml:"border" json:"border"`
}

// DialogSettings selects the dialog host
type DialogSettings struct {
	Native bool `yaml:"native" json:"native"`
}

// WorkflowSettings controls the save-confirmation workflow
type WorkflowSettings struct {
	// ContinueAfterFailedSave runs the guarded action (open, exit) even when the
	// user chose Save and the save was cancelled or failed.
	ContinueAfterFailedSave bool `yaml:"continue_after_failed_save" json:"continue_after_failed_save"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Editor: EditorSettings{
			ShowLineNumbers: true,
			TabWidth:        4,
			TextExtension:   ".txt",
		},
		UI: UISettings{
			Theme: ThemeSettings{
				Accent:  "170",
				Warning: "214",
				Danger:  "196",
				Border:  "243",
			},
		},
		Dialogs: DialogSettings{
			Native: false,
		},
		Workflow: WorkflowSettings{
			ContinueAfterFailedSave: false,
		},
	}
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks values that would otherwise fail late in the UI
func (s *Settings) Validate() error {
	if s.Editor.TabWidth < 1 || s.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", s.Editor.TabWidth)
	}

	ext := s.Editor.TextExtension
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\ `) {
		return fmt.Errorf("editor.text_extension must look like \".txt\", got %q", ext)
	}

	colors := map[string]string{
		"ui.theme.accent":  s.UI.Theme.Accent,
		"ui.theme.warning": s.UI.Theme.Warning,
		"ui.theme.danger":  s.UI.Theme.Danger,
		"ui.theme.border":  s.UI.Theme.Border,
	}
	for field, value := range colors {
		if !validColor(value) {
			return fmt.Errorf("%s is not a valid colour: %q", field, value)
		}
	}

	return nil
}

func validColor(value string) bool {
	if hexColor.MatchString(value) {
		return true
	}
	n, err := strconv.Atoi(value)
	return err == nil && n >= 0 && n <= 255
}
