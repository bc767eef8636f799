package gui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/dolmetscher/internal"
	"codeberg.org/snonux/dolmetscher/internal/i18n"
	"codeberg.org/snonux/dolmetscher/internal/translation"
)

// Translator is the part of translation.Translator the GUI uses
type Translator interface {
	Translate(ctx context.Context, text string, direction translation.Direction) (string, error)
	UpdateCredential(apiKey string)
	Credential() string
	Model() string
}

// CredentialStore persists the API key entered in the settings dialog
type CredentialStore interface {
	Save(apiKey string) error
}

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	input       *CustomMultiLineEntry
	output      *widget.Entry
	sourceLabel *widget.Label
	targetLabel *widget.Label
	charCount   *widget.Label
	statusLabel *widget.Label

	// Buttons
	translateButton *ttwidget.Button
	swapButton      *ttwidget.Button
	clearButton     *ttwidget.Button
	copyButton      *ttwidget.Button
	settingsButton  *ttwidget.Button

	// Services
	translator Translator
	store      CredentialStore
	messages   *i18n.Messages
	logger     *slog.Logger

	// State management
	direction translation.Direction
	busy      bool

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// Config holds GUI application configuration
type Config struct {
	Translator Translator
	Store      CredentialStore
	Messages   *i18n.Messages
	Logger     *slog.Logger
	Direction  translation.Direction

	// App is created with app.NewWithID when nil
	App fyne.App
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config.Messages == nil {
		config.Messages = i18n.New("en")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.App == nil {
		config.App = app.NewWithID("org.codeberg.snonux.dolmetscher")
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &Application{
		app:        config.App,
		translator: config.Translator,
		store:      config.Store,
		messages:   config.Messages,
		logger:     config.Logger,
		direction:  config.Direction,
		ctx:        ctx,
		cancel:     cancel,
	}

	a.setupUI()
	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(a.messages.T("app_title", map[string]any{"Version": internal.Version}))
	a.window.Resize(fyne.NewSize(900, 600))

	// Input and output
	a.input = NewCustomMultiLineEntry()
	a.input.SetPlaceHolder(a.messages.T("label_input", nil))
	a.input.SetOnSubmit(a.onTranslate)
	a.input.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})
	a.input.OnChanged = a.updateCharCount

	a.output = widget.NewMultiLineEntry()
	a.output.SetPlaceHolder(a.messages.T("label_output", nil))
	a.output.Wrapping = fyne.TextWrapWord
	a.output.Disable()

	// Direction labels
	a.sourceLabel = widget.NewLabel("")
	a.sourceLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.targetLabel = widget.NewLabel("")
	a.targetLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.charCount = widget.NewLabel("")
	a.charCount.TextStyle = fyne.TextStyle{Italic: true}

	// Buttons (tooltips will be set after tooltip layer is created)
	a.translateButton = ttwidget.NewButtonWithIcon(a.messages.T("button_translate", nil), theme.ConfirmIcon(), a.onTranslate)
	a.translateButton.Importance = widget.HighImportance
	a.swapButton = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.onSwapDirection)
	a.clearButton = ttwidget.NewButtonWithIcon(a.messages.T("button_clear", nil), theme.ContentClearIcon(), a.onClear)
	a.copyButton = ttwidget.NewButtonWithIcon(a.messages.T("button_copy", nil), theme.ContentCopyIcon(), a.onCopy)
	a.settingsButton = ttwidget.NewButtonWithIcon(a.messages.T("button_settings", nil), theme.SettingsIcon(), a.onSettings)

	header := container.NewGridWithColumns(2,
		container.NewHBox(a.sourceLabel, layout.NewSpacer(), a.swapButton),
		container.NewHBox(a.targetLabel, layout.NewSpacer(), a.settingsButton),
	)

	panes := container.NewGridWithColumns(2,
		container.NewBorder(nil, a.charCount, nil, nil, a.input),
		a.output,
	)

	toolbar := container.NewHBox(
		a.translateButton,
		a.clearButton,
		widget.NewSeparator(),
		a.copyButton,
		layout.NewSpacer(),
	)

	a.statusLabel = widget.NewLabel("")

	content := container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()),
		container.NewVBox(widget.NewSeparator(), toolbar, a.statusLabel),
		nil, nil,
		panes,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	// Now that tooltip layer is created, set all tooltips
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
	})

	a.updateDirectionLabels()
	a.updateCharCount("")
	if a.translator.Credential() == "" {
		a.statusLabel.SetText(a.messages.Error(translation.ErrCredentialMissing))
	} else {
		a.statusLabel.SetText(a.messages.T("status_ready", nil))
	}

	a.setupKeyboardShortcuts()
}

func (a *Application) setupTooltips() {
	a.translateButton.SetToolTip(a.messages.T("tooltip_translate", nil))
	a.swapButton.SetToolTip(a.messages.T("toggle_direction", nil))
	a.clearButton.SetToolTip(a.messages.T("tooltip_clear", nil))
	a.copyButton.SetToolTip(a.messages.T("tooltip_copy", nil))
	a.settingsButton.SetToolTip(a.messages.T("tooltip_settings", nil))
}

// setupKeyboardShortcuts sets up keyboard shortcuts for the application
func (a *Application) setupKeyboardShortcuts() {
	for _, shortcut := range submitShortcuts() {
		a.window.Canvas().AddShortcut(shortcut, func(fyne.Shortcut) {
			a.onTranslate()
		})
	}

	// Single-key shortcuts apply only while no entry is focused
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if a.window.Canvas().Focused() != nil {
			return
		}

		switch r {
		case 'i', 'I':
			a.window.Canvas().Focus(a.input)
		case 't', 'T', 'ü', 'Ü':
			a.onTranslate()
		case 's', 'S':
			a.onSwapDirection()
		case 'c', 'C':
			a.onCopy()
		case 'k', 'K':
			a.onSettings()
		case 'q', 'Q':
			a.window.Close()
		}
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
		}
	})
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.Canvas().Focus(a.input)
	a.window.ShowAndRun()
}

// Direction returns the currently selected translation direction
func (a *Application) Direction() translation.Direction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.direction
}

func (a *Application) updateDirectionLabels() {
	dir := a.Direction()
	a.sourceLabel.SetText(a.messages.Language(dir.Source()))
	a.targetLabel.SetText(a.messages.Language(dir.Target()))
}

func (a *Application) updateCharCount(text string) {
	a.charCount.SetText(a.messages.Plural("label_chars", utf8.RuneCountInString(text)))
}

// onSwapDirection reverses the direction and moves an existing translation
// into the input
func (a *Application) onSwapDirection() {
	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return
	}
	a.direction = a.direction.Reverse()
	a.mu.Unlock()

	if translated := a.output.Text; translated != "" {
		a.input.SetText(translated)
		a.output.SetText("")
	}
	a.updateDirectionLabels()
}

// onTranslate starts a translation unless one is already running
func (a *Application) onTranslate() {
	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return
	}
	a.busy = true
	dir := a.direction
	a.mu.Unlock()

	text := a.input.Text
	a.translateButton.Disable()
	a.swapButton.Disable()
	a.statusLabel.SetText(a.messages.T("status_translating", nil))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		result, err := a.translator.Translate(a.ctx, text, dir)
		fyne.Do(func() {
			a.onTranslateDone(result, err)
		})
	}()
}

func (a *Application) onTranslateDone(result string, err error) {
	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()

	a.translateButton.Enable()
	a.swapButton.Enable()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		a.logger.Debug("gui: translation failed", "kind", translation.KindOf(err).String())
		a.statusLabel.SetText(a.messages.T("status_failed", nil))
		a.showError(a.messages.Error(err))
		return
	}

	a.output.SetText(result)
	a.statusLabel.SetText(a.messages.T("status_done", map[string]any{"Model": a.translator.Model()}))
}

func (a *Application) onClear() {
	a.input.SetText("")
	a.output.SetText("")
	a.statusLabel.SetText(a.messages.T("status_ready", nil))
	a.window.Canvas().Focus(a.input)
}

func (a *Application) onCopy() {
	if a.output.Text == "" {
		return
	}
	a.window.Clipboard().SetContent(a.output.Text)
	a.statusLabel.SetText(a.messages.T("status_copied", nil))
}

// onSettings shows the API key dialog prefilled with the current key
func (a *Application) onSettings() {
	keyEntry := widget.NewPasswordEntry()
	keyEntry.SetText(a.translator.Credential())

	items := []*widget.FormItem{
		widget.NewFormItem(a.messages.T("settings_api_key", nil), keyEntry),
	}

	d := dialog.NewForm(
		a.messages.T("settings_title", nil),
		a.messages.T("settings_save", nil),
		a.messages.T("settings_cancel", nil),
		items,
		func(confirmed bool) {
			if confirmed {
				a.saveCredential(keyEntry.Text)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 200))
	d.Show()
}

// saveCredential hands the key to the translator and persists it. A failed
// write is reported but the key stays active for this session.
func (a *Application) saveCredential(apiKey string) {
	apiKey = strings.TrimSpace(apiKey)
	a.translator.UpdateCredential(apiKey)

	if err := a.store.Save(apiKey); err != nil {
		a.logger.Warn("gui: failed to save API key", "error", err)
		a.showError(a.messages.T("error_save_key", map[string]any{"Cause": err.Error()}))
		return
	}

	a.statusLabel.SetText(a.messages.T("settings_saved", nil))
}

func (a *Application) showError(message string) {
	dialog.ShowInformation(a.messages.T("error_title", nil), message, a.window)
}
