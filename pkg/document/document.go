package document

import (
	"fmt"
	"path/filepath"
)

const (
	// UntitledName is shown for a document that has never been saved or opened
	UntitledName = "Untitled"
	// DirtyMarker is appended to the display name while there are unsaved changes
	DirtyMarker = "*"
)

// Document tracks the live editor text against the text last synced with disk.
// It is owned by the UI goroutine and must not be shared.
type Document struct {
	hasBackingFile bool
	backingPath    string
	lastSyncedText string
	currentText    string
	dirty          bool

	onChange func()
}

// New creates an empty, untitled document
func New() *Document {
	return &Document{}
}

// SetChangeListener registers fn to be called after every state change that
// may alter the display name.
func (d *Document) SetChangeListener(fn func()) {
	d.onChange = fn
}

// OnTextChanged records new editor content and recomputes the dirty flag
func (d *Document) OnTextChanged(newText string) {
	d.currentText = newText
	d.dirty = d.currentText != d.lastSyncedText
	d.notify()
}

// MarkSynced records a successful load or save. An empty path keeps the
// current backing file.
func (d *Document) MarkSynced(path, text string) {
	d.lastSyncedText = text
	d.currentText = text
	if path != "" {
		d.hasBackingFile = true
		d.backingPath = path
	}
	d.dirty = false
	d.notify()
}

// Text returns the live content
func (d *Document) Text() string {
	return d.currentText
}

// SyncedText returns the content as of the last successful load or save
func (d *Document) SyncedText() string {
	return d.lastSyncedText
}

// IsDirty reports unsaved changes
func (d *Document) IsDirty() bool {
	return d.dirty
}

// HasBackingFile reports whether a file path is associated with the document
func (d *Document) HasBackingFile() bool {
	return d.hasBackingFile
}

// Path returns the backing path, if any
func (d *Document) Path() (string, bool) {
	return d.backingPath, d.hasBackingFile
}

// BaseName returns the file name of the backing path, or UntitledName
func (d *Document) BaseName() string {
	if !d.hasBackingFile {
		return UntitledName
	}
	return filepath.Base(d.backingPath)
}

// DisplayName returns the name used in the window title, with the dirty
// marker when there are unsaved changes.
func (d *Document) DisplayName() string {
	name := d.BaseName()
	if d.dirty {
		name += DirtyMarker
	}
	return name
}

// Title formats the window title for the given application name
func (d *Document) Title(app string) string {
	return fmt.Sprintf("%s — %s", d.DisplayName(), app)
}

func (d *Document) notify() {
	if d.onChange != nil {
		d.onChange()
	}
}
