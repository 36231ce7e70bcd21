package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// AppDir is the directory under the user config dir holding padbook files
	AppDir = "padbook"
	// SettingsFile is the settings file name inside AppDir
	SettingsFile = "settings.yaml"
	// DefaultTextExtension is appended by Save As with the text filter
	DefaultTextExtension = ".txt"
)

// ErrInvalidUTF8 is returned when a file cannot be decoded as UTF-8
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// ReadText reads a whole file and decodes it as UTF-8
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("failed to decode %s: %w", path, ErrInvalidUTF8)
	}

	return string(data), nil
}

// WriteText writes text to path as UTF-8, truncating any existing file.
// It returns the number of bytes written.
func WriteText(path string, text string) (int, error) {
	if !utf8.ValidString(text) {
		return 0, fmt.Errorf("failed to encode text for %s: %w", path, ErrInvalidUTF8)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := io.WriteString(f, text)
	if err != nil {
		f.Close()
		return n, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return n, fmt.Errorf("failed to close %s: %w", path, err)
	}

	return n, nil
}

// EnsureExtension appends ext to path unless the file name already ends with it
func EnsureExtension(path, ext string) string {
	if ext == "" || strings.HasSuffix(filepath.Base(path), ext) {
		return path
	}
	return path + ext
}

// StartDir returns the directory pickers should start in for the given path
func StartDir(path string) string {
	if path != "" {
		if dir := filepath.Dir(path); dir != "" {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir
			}
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
