package translation

import (
	"context"
)

//go:generate mockgen -source=chat.go -destination=../mocks/translation/mock_chat_client.go -package=mock_translation

// ChatClient sends one system + user message pair to a chat-completion API
// and returns the raw text of the reply
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// ClientFactory builds a ChatClient authenticated with apiKey
type ClientFactory func(apiKey string) ChatClient

// ChatRequest is the provider-independent form of a translation request
type ChatRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Params       GenerationParams
}

// GenerationParams holds the sampling parameters of a request
type GenerationParams struct {
	Temperature      float32
	TopP             float32
	FrequencyPenalty float32
	PresencePenalty  float32
	MaxTokens        int
}

// DeterministicParams returns the parameters used for every translation:
// no sampling randomness and no nucleus or penalty adjustments.
func DeterministicParams(maxTokens int) GenerationParams {
	return GenerationParams{
		Temperature:      0,
		TopP:             1,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
		MaxTokens:        maxTokens,
	}
}
