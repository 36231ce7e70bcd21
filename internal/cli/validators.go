package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidateOutputFormat validates the output format
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid output format '%s'. Must be one of: %s, %s", format, FormatYAML, FormatJSON)
}

// ValidateDirectoryPath checks that the parent of path exists or can be created
func ValidateDirectoryPath(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error accessing directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dir)
	}

	return nil
}
