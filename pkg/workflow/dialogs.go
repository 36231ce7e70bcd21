package workflow

// FilterKind is the name filter selected in the save picker
type FilterKind int

const (
	// FilterText requires the canonical text extension
	FilterText FilterKind = iota
	// FilterAny keeps the chosen name as is
	FilterAny
)

// Label returns the filter as shown in pickers, for the text extension ext
func (f FilterKind) Label(ext string) string {
	switch f {
	case FilterText:
		return "Text File (*" + ext + ")"
	case FilterAny:
		return "Any File (*)"
	default:
		return "Unknown"
	}
}

// Next cycles to the other filter
func (f FilterKind) Next() FilterKind {
	if f == FilterText {
		return FilterAny
	}
	return FilterText
}

// Choice is the answer to the save confirmation
type Choice int

const (
	// ChoiceCancel aborts the guarded action. Hosts also report it when the
	// dialog was dismissed or could not be shown.
	ChoiceCancel Choice = iota
	// ChoiceSave saves before running the guarded action
	ChoiceSave
	// ChoiceDiscard runs the guarded action without saving
	ChoiceDiscard
)

func (c Choice) String() string {
	switch c {
	case ChoiceSave:
		return "save"
	case ChoiceDiscard:
		return "discard"
	default:
		return "cancel"
	}
}

// Dialogs is implemented by the UI host. Every method returns immediately and
// answers through its callback, which the host must invoke on the UI goroutine
// exactly once.
type Dialogs interface {
	// PickOpenPath asks for an existing file; ok is false when cancelled
	PickOpenPath(startDir string, answer func(path string, ok bool))
	// PickSavePath asks for a destination; suggested may be empty
	PickSavePath(startDir, suggested string, answer func(path string, filter FilterKind, ok bool))
	// Confirm asks Save / Discard / Cancel
	Confirm(text string, answer func(Choice))
	// Warn shows a non-fatal message and calls done once dismissed
	Warn(text string, done func())
}
