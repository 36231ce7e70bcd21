package workflow

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pluqqy/padbook/pkg/document"
	"github.com/pluqqy/padbook/pkg/files"
)

// AppTitle appears in window titles and dialog messages
const AppTitle = "Padbook"

// Prompt suffixes appended to the save confirmation
const (
	PromptBeforeOpen = " Before opening a file.."
	PromptBeforeExit = " Before closing."
)

// AfterSavePolicy decides whether a guarded action runs when the user chose
// Save but the save did not complete.
type AfterSavePolicy int

const (
	// AbortUnlessSaved runs the guarded action only after a completed save
	AbortUnlessSaved AfterSavePolicy = iota
	// ContinueAlways runs the guarded action even if the save was cancelled
	// or failed, losing the unsaved text.
	ContinueAlways
)

// FileSystem is the durable store behind the document
type FileSystem interface {
	ReadText(path string) (string, error)
	WriteText(path string, text string) (int, error)
}

// DiskFS reads and writes UTF-8 files on the local filesystem
type DiskFS struct{}

func (DiskFS) ReadText(path string) (string, error) { return files.ReadText(path) }

func (DiskFS) WriteText(path string, text string) (int, error) {
	return files.WriteText(path, text)
}

// Options configures a Workflow
type Options struct {
	Policy        AfterSavePolicy
	TextExtension string
	FS            FileSystem
	// Quit closes the window; run by Exit once the guard allows it
	Quit func()
	// Status receives short feedback such as "Saved 5 B to note.txt"
	Status func(msg string)
	// Editable reports why the editor cannot hold text unchanged. Opens it
	// rejects are refused like unreadable files.
	Editable func(text string) error
	// Problem receives the reason behind a refused open
	Problem func(msg string)
}

// Workflow runs open, save and exit against a single document, asking the
// user before any action that would discard unsaved changes.
type Workflow struct {
	doc     *document.Document
	dialogs Dialogs
	policy  AfterSavePolicy
	ext     string
	fs      FileSystem
	quit    func()
	status  func(string)
	check   func(string) error
	problem func(string)
	// line ending of the backing file, restored on every write
	ending files.LineEnding
}

// New creates a workflow for doc
func New(doc *document.Document, dialogs Dialogs, opts Options) *Workflow {
	w := &Workflow{
		doc:     doc,
		dialogs: dialogs,
		policy:  opts.Policy,
		ext:     opts.TextExtension,
		fs:      opts.FS,
		quit:    opts.Quit,
		status:  opts.Status,
		check:   opts.Editable,
		problem: opts.Problem,
	}
	if w.ext == "" {
		w.ext = files.DefaultTextExtension
	}
	if w.fs == nil {
		w.fs = DiskFS{}
	}
	return w
}

// Document returns the document the workflow operates on
func (w *Workflow) Document() *document.Document {
	return w.doc
}

// Guard runs action directly when the document is clean. Otherwise it asks
// the user to save, discard or cancel, and runs action according to the
// answer and the after-save policy.
func (w *Workflow) Guard(action func(), prompt string) {
	if !w.doc.IsDirty() {
		action()
		return
	}

	w.dialogs.Confirm(w.ConfirmText(prompt), func(choice Choice) {
		log.Printf("guard: user chose %s", choice)
		switch choice {
		case ChoiceDiscard:
			action()
		case ChoiceSave:
			w.UserSave(func(saved bool) {
				if saved || w.policy == ContinueAlways {
					action()
					return
				}
				log.Printf("guard: save did not complete, action aborted")
			})
		default:
			// Cancelled or dialog failed
		}
	})
}

// ConfirmText builds the confirmation message for prompt
func (w *Workflow) ConfirmText(prompt string) string {
	if w.doc.HasBackingFile() {
		return fmt.Sprintf("Would you like to save %s?%s", w.doc.BaseName(), prompt)
	}
	return "Would you like to save this file?" + prompt
}

// UserSave saves to the backing file, or asks for one when the document is
// untitled. done, if not nil, reports whether the text reached disk.
func (w *Workflow) UserSave(done func(saved bool)) {
	path, ok := w.doc.Path()
	if !ok {
		w.SaveAs(done)
		return
	}
	w.SaveTo(path, done)
}

// SaveAs asks for a destination and saves there. Cancelling the picker is a
// no-op.
func (w *Workflow) SaveAs(done func(saved bool)) {
	current, _ := w.doc.Path()

	w.dialogs.PickSavePath(files.StartDir(current), current, func(path string, filter FilterKind, ok bool) {
		if !ok || path == "" {
			finish(done, false)
			return
		}
		w.SaveTo(w.TargetPath(path, filter), done)
	})
}

// TargetPath applies the extension rule of the selected filter
func (w *Workflow) TargetPath(path string, filter FilterKind) string {
	if filter == FilterText {
		return files.EnsureExtension(path, w.ext)
	}
	return path
}

// SaveTo writes the current text to path. On failure the user is warned and
// the document is left untouched.
func (w *Workflow) SaveTo(path string, done func(saved bool)) {
	text := w.doc.Text()

	n, err := w.fs.WriteText(path, w.ending.Apply(text))
	if err != nil {
		log.Printf("save: %v", err)
		w.dialogs.Warn(fmt.Sprintf("%s could not save the text at %s.", AppTitle, path), func() {
			finish(done, false)
		})
		return
	}

	w.doc.MarkSynced(path, text)
	log.Printf("save: wrote %d bytes (%s) to %s", n, w.ending, path)
	w.notify(fmt.Sprintf("Saved %s to %s", humanize.Bytes(uint64(n)), filepath.Base(path)))
	finish(done, true)
}

// Open asks for a file and loads it, after confirming unsaved changes
func (w *Workflow) Open() {
	w.Guard(func() {
		current, _ := w.doc.Path()
		w.dialogs.PickOpenPath(files.StartDir(current), func(path string, ok bool) {
			if !ok || path == "" {
				return
			}
			w.load(path)
		})
	}, PromptBeforeOpen)
}

// OpenPath loads path without a picker, after confirming unsaved changes
func (w *Workflow) OpenPath(path string) {
	w.Guard(func() {
		w.load(path)
	}, PromptBeforeOpen)
}

// Exit closes the window, after confirming unsaved changes
func (w *Workflow) Exit() {
	w.Guard(func() {
		if w.quit != nil {
			w.quit()
		}
	}, PromptBeforeExit)
}

func (w *Workflow) load(path string) {
	raw, err := w.fs.ReadText(path)
	if err != nil {
		w.refuse(path, err, "")
		return
	}

	text, ending, err := files.SplitLineEnding(raw)
	if err != nil {
		w.refuse(path, err, fmt.Sprintf("%s: %v", filepath.Base(path), err))
		return
	}
	if w.check != nil {
		if err := w.check(text); err != nil {
			w.refuse(path, err, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			return
		}
	}

	w.ending = ending
	w.doc.MarkSynced(path, text)
	log.Printf("open: read %d bytes (%s) from %s", len(raw), ending, path)
	w.notify(fmt.Sprintf("Opened %s (%s)", filepath.Base(path), humanize.Bytes(uint64(len(raw)))))
}

// refuse warns that path could not be opened and leaves the document as is
func (w *Workflow) refuse(path string, err error, reason string) {
	log.Printf("open: %v", err)
	if reason != "" && w.problem != nil {
		w.problem(reason)
	}
	w.dialogs.Warn(fmt.Sprintf("%s could not open the file: %s.", AppTitle, path), func() {})
}

func (w *Workflow) notify(msg string) {
	if w.status != nil {
		w.status(msg)
	}
}

func finish(done func(bool), saved bool) {
	if done != nil {
		done(saved)
	}
}
