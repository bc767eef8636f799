package i18n

import (
	"embed"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"codeberg.org/snonux/dolmetscher/internal/translation"
)

//go:embed active.*.toml
var localeFS embed.FS

// Messages renders user-facing text in one locale, falling back to English
// and finally to the message ID
type Messages struct {
	localizer *i18n.Localizer
	locale    language.Tag
}

// New loads the embedded catalogs and selects locale (e.g. "de")
func New(locale string) *Messages {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.de.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			slog.Warn("i18n: failed to load message file", "file", file, "error", err)
		}
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	return &Messages{
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
		locale:    tag,
	}
}

// Locale returns the selected language tag
func (m *Messages) Locale() string {
	return m.locale.String()
}

// T renders the message identified by key; data fills template placeholders
// and may be nil
func (m *Messages) T(key string, data map[string]any) string {
	return m.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
}

// Plural renders a message with a {{.Count}} placeholder and plural forms
func (m *Messages) Plural(key string, count int) string {
	return m.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (m *Messages) localize(lc *i18n.LocalizeConfig) string {
	msg, err := m.localizer.Localize(lc)
	if err != nil {
		slog.Debug("i18n: localize failed", "key", lc.MessageID, "locale", m.locale.String(), "error", err)
		return lc.MessageID
	}
	return msg
}

// Language returns the localised name of "English" or "German"
func (m *Messages) Language(name string) string {
	return m.T("language_"+strings.ToLower(name), nil)
}

// Error renders the user guidance for err according to its classification
func (m *Messages) Error(err error) string {
	if err == nil {
		return ""
	}

	cause := translation.Cause(err)
	if cause == nil {
		cause = err
	}
	data := map[string]any{"Cause": cause.Error()}

	switch translation.KindOf(err) {
	case translation.KindCredentialMissing:
		return m.T("error_credential_missing", nil)
	case translation.KindEmptyInput:
		return m.T("error_empty_input", nil)
	case translation.KindNetwork:
		return m.T("error_network", data)
	case translation.KindAuth:
		return m.T("error_auth", data)
	default:
		return m.T("error_translation", data)
	}
}
