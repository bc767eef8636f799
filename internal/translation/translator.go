package translation

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"
)

// Translator handles English <-> German translation. It has two states:
// without an API key every call fails with ErrCredentialMissing, with one
// it is ready to call the API.
type Translator struct {
	mu     sync.RWMutex
	apiKey string
	client ChatClient

	newClient ClientFactory
	model     string
	maxTokens int
	logger    *slog.Logger
}

// Config holds the settings of a Translator
type Config struct {
	Model     string
	MaxTokens int
	// NewClient builds the chat client for a key; defaults to an
	// OpenAIClient against DefaultBaseURL
	NewClient ClientFactory
	Logger    *slog.Logger
}

// NewTranslator creates a new translator instance
func NewTranslator(apiKey string, config Config) *Translator {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.NewClient == nil {
		config.NewClient = NewOpenAIClientFactory(ClientConfig{})
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	t := &Translator{
		newClient: config.NewClient,
		model:     config.Model,
		maxTokens: config.MaxTokens,
		logger:    config.Logger,
	}
	t.UpdateCredential(apiKey)
	return t
}

// Translate sends text to the API and returns the trimmed translation.
// It blocks until the API answers or ctx is done.
func (t *Translator) Translate(ctx context.Context, text string, direction Direction) (string, error) {
	t.mu.RLock()
	apiKey, client := t.apiKey, t.client
	t.mu.RUnlock()

	if apiKey == "" || client == nil {
		return "", ErrCredentialMissing
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	req := t.buildRequest(text, direction)
	t.logger.Debug("sending translation request",
		"model", req.Model,
		"direction", direction.String(),
		"chars", utf8.RuneCountInString(text))

	reply, err := client.Complete(ctx, req)
	if err != nil {
		err = classify(err)
		t.logger.Warn("translation failed", "kind", KindOf(err).String(), "error", err)
		return "", err
	}

	return strings.TrimSpace(reply), nil
}

func (t *Translator) buildRequest(text string, direction Direction) ChatRequest {
	return ChatRequest{
		Model:        t.model,
		SystemPrompt: direction.SystemPrompt(),
		UserPrompt:   userPrompt(text),
		Params:       DeterministicParams(t.maxTokens),
	}
}

// UpdateCredential replaces the API key and the client built from it.
// An empty key puts the translator back into the no-credential state.
func (t *Translator) UpdateCredential(apiKey string) {
	var client ChatClient
	if apiKey != "" {
		client = t.newClient(apiKey)
	}

	// Calls already in flight keep the client they started with.
	t.mu.Lock()
	t.apiKey = apiKey
	t.client = client
	t.mu.Unlock()
}

// Credential returns the API key currently in use
func (t *Translator) Credential() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.apiKey
}

// Ready reports whether an API key is configured
func (t *Translator) Ready() bool {
	return t.Credential() != ""
}

// Model returns the chat model requests are sent to
func (t *Translator) Model() string {
	return t.model
}
