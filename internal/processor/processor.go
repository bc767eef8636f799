package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"codeberg.org/snonux/dolmetscher/internal/cli"
	"codeberg.org/snonux/dolmetscher/internal/config"
	"codeberg.org/snonux/dolmetscher/internal/credential"
	"codeberg.org/snonux/dolmetscher/internal/gui"
	"codeberg.org/snonux/dolmetscher/internal/i18n"
	"codeberg.org/snonux/dolmetscher/internal/models"
	"codeberg.org/snonux/dolmetscher/internal/translation"
)

// Processor wires the credential store, the translator and the views
// together and implements the command-line operations
type Processor struct {
	flags      *cli.Flags
	cfg        *config.Config
	store      *credential.Store
	translator *translation.Translator
	messages   *i18n.Messages
	logger     *slog.Logger

	in  io.Reader
	out io.Writer
}

// NewProcessor creates a processor from the loaded configuration. The API
// key is read from the credential store once, here.
func NewProcessor(flags *cli.Flags, cfg *config.Config, logger *slog.Logger) *Processor {
	store := credential.NewStore(cfg.Credential.File)

	tc := cfg.TranslatorConfig()
	tc.Logger = logger

	return &Processor{
		flags:      flags,
		cfg:        cfg,
		store:      store,
		translator: translation.NewTranslator(store.Load(), tc),
		messages:   i18n.New(cfg.UI.Locale),
		logger:     logger,
		in:         os.Stdin,
		out:        os.Stdout,
	}
}

// ProcessText translates text in the direction selected by the flags and
// prints the result
func (p *Processor) ProcessText(ctx context.Context, text string) error {
	result, err := p.translator.Translate(ctx, text, p.direction())
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, result)
	return nil
}

// direction is German to English with --to-english, else the configured
// default
func (p *Processor) direction() translation.Direction {
	if p.flags.ToEnglish {
		return translation.GermanToEnglish
	}
	return p.cfg.DefaultDirection()
}

// ProcessFile translates the contents of the file named by --file; "-"
// reads standard input
func (p *Processor) ProcessFile(ctx context.Context) error {
	var (
		data []byte
		err  error
	)
	if p.flags.InputFile == "-" {
		data, err = io.ReadAll(p.in)
	} else {
		data, err = os.ReadFile(p.flags.InputFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return p.ProcessText(ctx, string(data))
}

// SetAPIKey stores apiKey and makes it the translator's credential
func (p *Processor) SetAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if err := p.store.Save(apiKey); err != nil {
		return err
	}
	p.translator.UpdateCredential(apiKey)

	fmt.Fprintf(p.out, "API key saved to %s\n", p.store.Path())
	return nil
}

// ShowAPIKey prints the stored API key in masked form
func (p *Processor) ShowAPIKey() error {
	apiKey := p.translator.Credential()
	if apiKey == "" {
		return translation.ErrCredentialMissing
	}

	fmt.Fprintf(p.out, "%s (%s)\n", credential.Mask(apiKey), p.store.Path())
	return nil
}

// ListModels prints the chat models available to the stored API key
func (p *Processor) ListModels(ctx context.Context) error {
	lister := models.NewLister(p.translator.Credential(), p.cfg.OpenAI.BaseURL)
	return lister.ListAvailableModels(ctx, p.out, p.translator.Model())
}

// RunGUIMode launches the interactive GUI and blocks until it is closed
func (p *Processor) RunGUIMode() error {
	app := gui.New(&gui.Config{
		Translator: p.translator,
		Store:      p.store,
		Messages:   p.messages,
		Logger:     p.logger,
		Direction:  p.direction(),
	})
	app.Run()
	return nil
}

// Describe renders err for the user. Translation failures use the
// localised guidance, everything else its own text.
func (p *Processor) Describe(err error) string {
	for _, kind := range []error{
		translation.ErrCredentialMissing,
		translation.ErrEmptyInput,
		translation.ErrNetwork,
		translation.ErrAuth,
		translation.ErrTranslation,
	} {
		if errors.Is(err, kind) {
			return p.messages.Error(err)
		}
	}
	return err.Error()
}
