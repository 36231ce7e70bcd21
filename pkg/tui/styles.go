package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pluqqy/padbook/pkg/models"
)

// Color constants
const (
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorWhite    = "255" // White
)

// Theme holds the styles derived from the theme settings
type Theme struct {
	Accent  lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Border  lipgloss.Color

	Header       lipgloss.Style
	MenuBar      lipgloss.Style
	MenuTitle    lipgloss.Style
	MenuActive   lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	MenuHint     lipgloss.Style
	EditorBorder lipgloss.Style
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	WarningText  lipgloss.Style
	Help         lipgloss.Style
	Status       lipgloss.Style
	StatusDirty  lipgloss.Style
}

// NewTheme builds styles from settings
func NewTheme(settings models.ThemeSettings) Theme {
	t := Theme{
		Accent:  lipgloss.Color(settings.Accent),
		Warning: lipgloss.Color(settings.Warning),
		Danger:  lipgloss.Color(settings.Danger),
		Border:  lipgloss.Color(settings.Border),
	}

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		PaddingLeft(1)

	t.MenuBar = lipgloss.NewStyle().
		Background(lipgloss.Color(ColorSelected)).
		Foreground(lipgloss.Color(ColorNormal))

	t.MenuTitle = lipgloss.NewStyle().
		Padding(0, 1)

	t.MenuActive = lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color(ColorWhite)).
		Background(t.Accent)

	t.MenuItem = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNormal)).
		PaddingLeft(1).
		PaddingRight(1)

	t.MenuSelected = t.MenuItem.
		Foreground(t.Accent).
		Background(lipgloss.Color(ColorSelected)).
		Bold(true)

	t.MenuHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim))

	t.EditorBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	t.Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(1, 2)

	t.DialogTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Warning)

	t.WarningText = lipgloss.NewStyle().
		Foreground(t.Warning)

	t.Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)).
		PaddingLeft(1)

	t.Status = lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("230")).
		Padding(0, 1)

	t.StatusDirty = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	return t
}

// DefaultTheme returns the theme for the default settings
func DefaultTheme() Theme {
	return NewTheme(models.DefaultSettings().UI.Theme)
}
