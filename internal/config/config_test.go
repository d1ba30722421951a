package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/assistant-bot/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"VCardVersion", config.VCardVersion},
		{"BookFileName", config.BookFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 7, config.UpcomingHorizonDays, "Birthday window is one week")
	assert.Equal(t, 10, config.PhoneDigits)
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
	assert.Greater(t, config.DefaultICalRefresh, 0*time.Second)
}

// TestDateFormats verifies the input and display layouts agree on the same date.
func TestDateFormats(t *testing.T) {
	d, err := time.Parse(config.DateFormatInput, "24-12-1990")
	require.NoError(t, err)
	assert.Equal(t, "24.12.1990", d.Format(config.DateFormatDisplay))

	d, err = time.Parse(config.DateFormatInput, "1-2-1990")
	require.NoError(t, err)
	assert.Equal(t, "01.02.1990", d.Format(config.DateFormatDisplay))
}

func TestStubVCalendar_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.StubVCalendar, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(config.StubVCalendar, "END:VCALENDAR\r\n"))
}

func TestLoadSettings_MissingFile(t *testing.T) {
	s, err := config.LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), s)
}

func TestLoadSettings_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	content := "book_path: /tmp/contacts.db\nlanguage: uk\ncalendar:\n  reminder: -P1D\n"
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/contacts.db", s.BookPath)
	assert.Equal(t, "uk", s.Language)
	assert.Equal(t, "-P1D", s.Calendar.Reminder)
}

func TestLoadSettings_EmptyKeysFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("calendar:\n  reminder: -PT1H\n"), config.FilePermUserRW))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, config.BookFileName, s.BookPath)
	assert.Equal(t, config.DefaultLanguage, s.Language)
	assert.Equal(t, "-PT1H", s.Calendar.Reminder)
}

func TestLoadSettings_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("language: [unclosed"), config.FilePermUserRW))

	_, err := config.LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSettingsParse)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", config.SettingsFileName)
	want := &config.Settings{
		BookPath: "book.vcf",
		Language: "uk",
		Calendar: config.CalendarSettings{Reminder: "-P2D"},
	}
	require.NoError(t, want.Save(path))

	got, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIsSupportedLanguage(t *testing.T) {
	assert.True(t, config.IsSupportedLanguage("en"))
	assert.True(t, config.IsSupportedLanguage("uk"))
	assert.False(t, config.IsSupportedLanguage("de"))
	assert.False(t, config.IsSupportedLanguage(""))
}
