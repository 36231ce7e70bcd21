package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusFeedback represents a temporary status message
type StatusFeedback struct {
	Message   string
	Icon      string
	ShowUntil time.Time
	Type      StatusType
}

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

// StatusManager manages temporary status messages
type StatusManager struct {
	CurrentStatus     *StatusFeedback
	DefaultDuration   time.Duration
	PersistentMessage string

	now func() time.Time
}

// NewStatusManager creates a new status manager
func NewStatusManager() *StatusManager {
	return &StatusManager{
		DefaultDuration: 3 * time.Second,
		now:             time.Now,
	}
}

// ShowFeedback displays a status message with an icon
func (sm *StatusManager) ShowFeedback(icon, message string, statusType StatusType) tea.Cmd {
	sm.CurrentStatus = &StatusFeedback{
		Message:   message,
		Icon:      icon,
		ShowUntil: sm.now().Add(sm.DefaultDuration),
		Type:      statusType,
	}

	// Re-render once the message expires
	return tea.Tick(sm.DefaultDuration, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// ShowSuccess shows a success message
func (sm *StatusManager) ShowSuccess(message string) tea.Cmd {
	return sm.ShowFeedback("✓", message, StatusTypeSuccess)
}

// ShowWarning shows a warning message
func (sm *StatusManager) ShowWarning(message string) tea.Cmd {
	return sm.ShowFeedback("⚠", message, StatusTypeWarning)
}

// ShowError shows an error message
func (sm *StatusManager) ShowError(message string) tea.Cmd {
	return sm.ShowFeedback("×", message, StatusTypeError)
}

// ShowInfo shows an info message
func (sm *StatusManager) ShowInfo(message string) tea.Cmd {
	return sm.ShowFeedback("ℹ", message, StatusTypeInfo)
}

// SetPersistentMessage sets a message that persists until cleared with ""
func (sm *StatusManager) SetPersistentMessage(message string) {
	sm.PersistentMessage = message
}

// IsActive checks if a status is currently showing
func (sm *StatusManager) IsActive() bool {
	if sm.CurrentStatus == nil {
		return false
	}

	if sm.now().After(sm.CurrentStatus.ShowUntil) {
		sm.CurrentStatus = nil
		return false
	}

	return true
}

// GetStatus returns the current status message if active
func (sm *StatusManager) GetStatus() (string, bool) {
	if sm.IsActive() {
		return fmt.Sprintf("%s %s", sm.CurrentStatus.Icon, sm.CurrentStatus.Message), true
	}

	if sm.PersistentMessage != "" {
		return "ℹ " + sm.PersistentMessage, true
	}

	return "", false
}

// ClearStatusMsg is sent when a status message expires
type ClearStatusMsg struct{}
