package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/dustin/go-humanize"
)

// maxEditorLines is the most lines the bubbles text area keeps. It is also
// the MaxHeight, which sizes the line number gutter.
const maxEditorLines = 10000

// gutterOverflow is how much wider the " 10000 " gutter is than the four
// columns SetWidth reserves for line numbers.
const gutterOverflow = 3

var (
	errTabs        = errors.New("tab characters would be turned into spaces")
	errUnsupported = errors.New("contains characters the editor cannot show")
)

func newEditor(showLineNumbers bool) textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = showLineNumbers
	ta.Prompt = " "
	ta.CharLimit = 0
	ta.MaxHeight = maxEditorLines
	return ta
}

// editable reports why the text area would not hold text byte for byte.
// Saving text the editor altered on load would rewrite the file.
func editable(text string) error {
	if n := countLines(text); n > maxEditorLines {
		return fmt.Errorf("%s lines, the editor holds %s",
			humanize.Comma(int64(n)), humanize.Comma(maxEditorLines))
	}
	if strings.Contains(text, "\t") {
		return errTabs
	}

	scratch := newEditor(false)
	scratch.SetValue(text)
	if scratch.Value() != text {
		return errUnsupported
	}
	return nil
}
