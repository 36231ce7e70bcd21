package files

import (
	"errors"
	"strings"
)

// LineEnding is the newline convention of a file on disk
type LineEnding int

const (
	// LF separates lines with "\n"
	LF LineEnding = iota
	// CRLF separates lines with "\r\n"
	CRLF
)

var (
	// ErrMixedLineEndings is returned when a file uses both "\n" and "\r\n"
	ErrMixedLineEndings = errors.New("file mixes LF and CRLF line endings")
	// ErrBareCarriageReturn is returned for a "\r" not followed by "\n"
	ErrBareCarriageReturn = errors.New("file contains a carriage return outside a CRLF line ending")
)

func (e LineEnding) String() string {
	if e == CRLF {
		return "CRLF"
	}
	return "LF"
}

// SplitLineEnding returns text with "\n" line endings and the convention it
// was stored with. Text that cannot be written back unchanged is rejected.
func SplitLineEnding(text string) (string, LineEnding, error) {
	crlf := strings.Count(text, "\r\n")
	if crlf == 0 {
		if strings.Contains(text, "\r") {
			return "", LF, ErrBareCarriageReturn
		}
		return text, LF, nil
	}

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	if strings.Contains(normalized, "\r") {
		return "", LF, ErrBareCarriageReturn
	}
	if strings.Count(normalized, "\n") != crlf {
		return "", LF, ErrMixedLineEndings
	}
	return normalized, CRLF, nil
}

// Apply converts "\n" line endings in text to e
func (e LineEnding) Apply(text string) string {
	if e == CRLF {
		return strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}
