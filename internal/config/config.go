package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"codeberg.org/snonux/dolmetscher/internal/credential"
	"codeberg.org/snonux/dolmetscher/internal/translation"
)

// EnvPrefix prefixes every environment variable override
const EnvPrefix = "DOLMETSCHER"

type Config struct {
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Credential CredentialConfig `mapstructure:"credential"`
	UI         UIConfig         `mapstructure:"ui"`
}

type OpenAIConfig struct {
	Model     string        `mapstructure:"model" validate:"required"`
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	MaxTokens int           `mapstructure:"max_tokens" validate:"min=1"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type CredentialConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

type UIConfig struct {
	Locale    string `mapstructure:"locale" validate:"oneof=en de"`
	Direction string `mapstructure:"direction" validate:"oneof=en-de de-en en2de de2en"`
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("openai.model", translation.DefaultModel)
	v.SetDefault("openai.base_url", translation.DefaultBaseURL)
	v.SetDefault("openai.max_tokens", translation.DefaultMaxTokens)
	v.SetDefault("openai.timeout", translation.DefaultTimeout)
	v.SetDefault("credential.file", credential.DefaultPath())
	v.SetDefault("ui.locale", "en")
	v.SetDefault("ui.direction", translation.EnglishToGerman.String())
}

// Setup prepares v: defaults, DOLMETSCHER_* environment overrides (a .env
// file in the working directory is honoured) and the config file. With an
// empty cfgFile, .dolmetscher.yaml is searched in $HOME and the working
// directory and may be absent.
func Setup(v *viper.Viper, cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".dolmetscher")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
	}

	return nil
}

// FromViper decodes and validates the configuration held by v
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration from cfgFile (or the default locations)
// into a fresh viper instance
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if err := Setup(v, cfgFile); err != nil {
		return nil, err
	}
	return FromViper(v)
}

// Validate checks every field and reports all violations at once
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}

	err = validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: %s",
			strings.TrimPrefix(fe.Namespace(), "Config."), fe.Translate(trans)))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

// DefaultDirection returns the translation direction used when none is
// chosen explicitly
func (c *Config) DefaultDirection() translation.Direction {
	dir, err := translation.ParseDirection(c.UI.Direction)
	if err != nil {
		return translation.EnglishToGerman
	}
	return dir
}

// TranslatorConfig returns the translation settings derived from c
func (c *Config) TranslatorConfig() translation.Config {
	return translation.Config{
		Model:     c.OpenAI.Model,
		MaxTokens: c.OpenAI.MaxTokens,
		NewClient: translation.NewOpenAIClientFactory(translation.ClientConfig{
			BaseURL: c.OpenAI.BaseURL,
			Timeout: c.OpenAI.Timeout,
		}),
	}
}
