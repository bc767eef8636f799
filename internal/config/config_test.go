package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/dolmetscher/internal/credential"
	"codeberg.org/snonux/dolmetscher/internal/testutil"
	"codeberg.org/snonux/dolmetscher/internal/translation"
)

func defaultConfig() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			Model:     translation.DefaultModel,
			BaseURL:   translation.DefaultBaseURL,
			MaxTokens: translation.DefaultMaxTokens,
			Timeout:   translation.DefaultTimeout,
		},
		Credential: CredentialConfig{File: credential.DefaultPath()},
		UI:         UIConfig{Locale: "en", Direction: "en-de"},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name: "custom values",
			configContent: `openai:
  model: gpt-4o-mini
  base_url: http://localhost:8080/v1
  max_tokens: 2048
  timeout: 15s
credential:
  file: /tmp/dolmetscher/key.json
ui:
  locale: de
  direction: de-en
`,
			want: func() *Config {
				return &Config{
					OpenAI: OpenAIConfig{
						Model:     "gpt-4o-mini",
						BaseURL:   "http://localhost:8080/v1",
						MaxTokens: 2048,
						Timeout:   15 * time.Second,
					},
					Credential: CredentialConfig{File: "/tmp/dolmetscher/key.json"},
					UI:         UIConfig{Locale: "de", Direction: "de-en"},
				}
			},
		},
		{
			name: "partial config uses defaults",
			configContent: `openai:
  model: gpt-4o
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.OpenAI.Model = "gpt-4o"
				return cfg
			},
		},
		{
			name: "unknown keys are ignored",
			configContent: `wrong_key:
  some_value: test
`,
			want: defaultConfig,
		},
		{
			name: "invalid YAML format",
			configContent: `openai:
  model: gpt-4o
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "invalid values are all reported",
			configContent: `openai:
  base_url: not a url
  max_tokens: 0
ui:
  locale: fr
  direction: en-fr
`,
			wantErrorContains: []string{
				"invalid configuration",
				"openai.base_url",
				"openai.max_tokens",
				"ui.locale",
				"ui.direction",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.CreateConfigFile(t, tt.configContent)

			got, err := Load(path)
			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), want)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := testutil.CreateConfigFile(t, "openai:\n  model: gpt-4o\n")
	t.Setenv("DOLMETSCHER_OPENAI_MODEL", "gpt-4.1")
	t.Setenv("DOLMETSCHER_OPENAI_TIMEOUT", "5s")
	t.Setenv("DOLMETSCHER_UI_LOCALE", "de")

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4.1", got.OpenAI.Model)
	assert.Equal(t, 5*time.Second, got.OpenAI.Timeout)
	assert.Equal(t, "de", got.UI.Locale)
}

func TestFromViper_FlagStyleOverride(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("openai.model", "gpt-4o-mini")

	got, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", got.OpenAI.Model)
	assert.Equal(t, translation.DefaultMaxTokens, got.OpenAI.MaxTokens)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.OpenAI.Model = ""
	cfg.OpenAI.Timeout = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai.model")
	assert.Contains(t, err.Error(), "openai.timeout")
}

func TestTranslatorConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.OpenAI.Model = "gpt-4o"
	cfg.OpenAI.MaxTokens = 1000

	tc := cfg.TranslatorConfig()
	assert.Equal(t, "gpt-4o", tc.Model)
	assert.Equal(t, 1000, tc.MaxTokens)
	require.NotNil(t, tc.NewClient)
	assert.NotNil(t, tc.NewClient("sk-test"))
}

func TestDefaultDirection(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, translation.EnglishToGerman, cfg.DefaultDirection())

	cfg.UI.Direction = "de2en"
	assert.Equal(t, translation.GermanToEnglish, cfg.DefaultDirection())

	cfg.UI.Direction = "unknown"
	assert.Equal(t, translation.EnglishToGerman, cfg.DefaultDirection())
}
