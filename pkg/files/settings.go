package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pluqqy/padbook/pkg/models"
	"gopkg.in/yaml.v3"
)

// SettingsPath returns the default location of the settings file
func SettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, SettingsFile), nil
}

// ReadSettings loads settings from path, or from SettingsPath when path is
// empty. A missing default file yields the defaults; a missing explicit file,
// an unreadable file or an invalid one is an error.
func ReadSettings(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	explicit := path != ""
	if !explicit {
		p, err := SettingsPath()
		if err != nil {
			// No config dir (e.g. $HOME unset): run with defaults
			return settings, nil
		}
		path = p
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}

	return settings, nil
}

// WriteSettings saves settings as YAML at path, creating its directory
func WriteSettings(path string, settings *models.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}

	return nil
}
