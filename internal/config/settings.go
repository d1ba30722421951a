package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds the persisted user preferences.
// Command-line flags override any value loaded from the file.
type Settings struct {
	BookPath string           `yaml:"book_path"`
	Language string           `yaml:"language"`
	Calendar CalendarSettings `yaml:"calendar"`
}

// CalendarSettings configures the export-calendar command.
type CalendarSettings struct {
	// Reminder is an ISO8601 duration trigger (e.g. "-P1D"). Empty disables alarms.
	Reminder string `yaml:"reminder"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		BookPath: BookFileName,
		Language: DefaultLanguage,
	}
}

// DefaultSettingsPath returns <user config dir>/<AppID>/settings.yaml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppID, SettingsFileName), nil
}

// LoadSettings reads settings from path. A missing file yields defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}

	// Empty keys in the file fall back to defaults.
	if s.BookPath == "" {
		s.BookPath = BookFileName
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}

	slog.Debug(MsgSettingsLoad,
		LogKeyComponent, CompSettings,
		LogKeyFile, path,
	)
	return s, nil
}

// Save writes settings to path, creating the parent directory if needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", ErrCreateDir, err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}

	if err := os.WriteFile(path, data, FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	return nil
}

// IsSupportedLanguage reports whether lang has an embedded locale.
func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
