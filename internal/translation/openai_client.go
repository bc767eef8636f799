package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"
)

const (
	DefaultBaseURL   = "https://api.openai.com/v1"
	DefaultModel     = "chatgpt-4o-latest"
	DefaultMaxTokens = 16383
	DefaultTimeout   = 60 * time.Second
)

// OpenAIClient talks to an OpenAI-compatible /chat/completions endpoint
type OpenAIClient struct {
	httpClient *resty.Client
}

// ClientConfig holds transport settings for OpenAIClient
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewOpenAIClient creates a client authenticated with apiKey
func NewOpenAIClient(apiKey string, config ClientConfig) *OpenAIClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(config.BaseURL, "/"))
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(config.Timeout)

	return &OpenAIClient{httpClient: client}
}

// NewOpenAIClientFactory returns a ClientFactory producing OpenAIClients
// that share config
func NewOpenAIClientFactory(config ClientConfig) ClientFactory {
	return func(apiKey string) ChatClient {
		return NewOpenAIClient(apiKey, config)
	}
}

// Close releases idle connections
func (c *OpenAIClient) Close() error {
	return c.httpClient.Close()
}

// chatCompletionRequest mirrors openai.ChatCompletionRequest, except that the
// sampling fields are always serialized: a zero temperature must reach the API.
type chatCompletionRequest struct {
	Model            string                               `json:"model"`
	Messages         []openai.ChatCompletionMessage       `json:"messages"`
	Temperature      float32                              `json:"temperature"`
	TopP             float32                              `json:"top_p"`
	FrequencyPenalty float32                              `json:"frequency_penalty"`
	PresencePenalty  float32                              `json:"presence_penalty"`
	MaxTokens        int                                  `json:"max_tokens,omitempty"`
	ResponseFormat   *openai.ChatCompletionResponseFormat `json:"response_format,omitempty"`
}

func newChatCompletionRequest(req ChatRequest) chatCompletionRequest {
	return chatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature:      req.Params.Temperature,
		TopP:             req.Params.TopP,
		FrequencyPenalty: req.Params.FrequencyPenalty,
		PresencePenalty:  req.Params.PresencePenalty,
		MaxTokens:        req.Params.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeText,
		},
	}
}

// Complete implements ChatClient
func (c *OpenAIClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(newChatCompletionRequest(req)).
		SetResult(&openai.ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", newAPIError(response.StatusCode(), response.String())
	}

	result, ok := response.Result().(*openai.ChatCompletionResponse)
	if !ok || result == nil {
		return "", errors.New("unexpected response body")
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no translation returned")
	}

	return result.Choices[0].Message.Content, nil
}

// newAPIError decodes an OpenAI error body, falling back to the raw body
// for gateways that answer with plain text
func newAPIError(statusCode int, body string) error {
	var errResp openai.ErrorResponse
	if err := json.Unmarshal([]byte(body), &errResp); err == nil && errResp.Error != nil {
		errResp.Error.HTTPStatusCode = statusCode
		errResp.Error.HTTPStatus = http.StatusText(statusCode)
		return errResp.Error
	}

	return &openai.APIError{
		HTTPStatusCode: statusCode,
		HTTPStatus:     http.StatusText(statusCode),
		Message:        strings.TrimSpace(body),
	}
}
