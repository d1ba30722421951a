package assistant

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/assistant-bot/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Messages translates the user-facing strings of the command loop.
type Messages struct {
	// Languages lists the locales found in the embedded files.
	Languages []string

	bundle    *i18n.Bundle
	localizer *i18n.Localizer
}

// NewMessages loads the embedded locales and selects lang.
// Unknown languages fall back to English.
func NewMessages(lang string) *Messages {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	m := &Messages{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		m.SetLanguage(lang)
		return m
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		m.Languages = append(m.Languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	m.SetLanguage(lang)
	return m
}

// SetLanguage switches the active locale.
func (m *Messages) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	m.localizer = i18n.NewLocalizer(m.bundle, lang)
}

// Get translates key, filling its template with data.
// A missing key is returned as is so the output never goes blank.
func (m *Messages) Get(key string, data map[string]any) string {
	if m == nil || m.localizer == nil {
		return key
	}
	msg, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// EventSummary formats a calendar event title in the active language.
func (m *Messages) EventSummary(name string, age int) string {
	if age == 0 {
		return m.Get(config.TKeyEvtSummaryBirth, map[string]any{"Name": name})
	}
	return m.Get(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age})
}
