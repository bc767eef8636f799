package processor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"codeberg.org/snonux/dolmetscher/internal/cli"
	"codeberg.org/snonux/dolmetscher/internal/config"
	mock_translation "codeberg.org/snonux/dolmetscher/internal/mocks/translation"
	"codeberg.org/snonux/dolmetscher/internal/testutil"
	"codeberg.org/snonux/dolmetscher/internal/translation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(credentialFile string) *config.Config {
	return &config.Config{
		OpenAI: config.OpenAIConfig{
			Model:     translation.DefaultModel,
			BaseURL:   translation.DefaultBaseURL,
			MaxTokens: translation.DefaultMaxTokens,
			Timeout:   translation.DefaultTimeout,
		},
		Credential: config.CredentialConfig{File: credentialFile},
		UI:         config.UIConfig{Locale: "en", Direction: "en-de"},
	}
}

// newTestProcessor returns a processor whose translator talks to a mock
// client and whose output is captured
func newTestProcessor(t *testing.T, flags *cli.Flags, apiKey string) (*Processor, *mock_translation.MockChatClient, *bytes.Buffer) {
	t.Helper()

	credFile := filepath.Join(t.TempDir(), "dolmetscher", "credentials.json")
	p := NewProcessor(flags, testConfig(credFile), discardLogger())

	client := mock_translation.NewMockChatClient(gomock.NewController(t))
	p.translator = translation.NewTranslator(apiKey, translation.Config{
		NewClient: func(string) translation.ChatClient { return client },
		Logger:    discardLogger(),
	})

	var out bytes.Buffer
	p.out = &out
	return p, client, &out
}

func TestNewProcessor(t *testing.T) {
	flags := cli.NewFlags()
	credFile := testutil.CreateCredentialFile(t, `{"api_key":"sk-stored"}`)

	p := NewProcessor(flags, testConfig(credFile), discardLogger())

	require.NotNil(t, p)
	assert.Same(t, flags, p.flags)
	assert.Equal(t, credFile, p.store.Path())
	assert.Equal(t, "sk-stored", p.translator.Credential())
	assert.Equal(t, "en", p.messages.Locale())
}

func TestNewProcessor_NoStoredKey(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "missing.json")

	p := NewProcessor(cli.NewFlags(), testConfig(credFile), discardLogger())

	assert.False(t, p.translator.Ready())
}

func TestProcessText(t *testing.T) {
	tests := []struct {
		name       string
		toEnglish  bool
		input      string
		reply      string
		wantSystem string
		wantOut    string
	}{
		{
			name:       "english to german",
			input:      "Hello world",
			reply:      " Hallo Welt \n",
			wantSystem: "You are the perfect English to German translator.",
			wantOut:    "Hallo Welt\n",
		},
		{
			name:       "german to english",
			toEnglish:  true,
			input:      "Guten Morgen",
			reply:      "Good morning",
			wantSystem: "You are the perfect German to English translator.",
			wantOut:    "Good morning\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := cli.NewFlags()
			flags.ToEnglish = tt.toEnglish
			p, client, out := newTestProcessor(t, flags, "sk-test")

			client.EXPECT().
				Complete(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req translation.ChatRequest) (string, error) {
					assert.Equal(t, tt.wantSystem, req.SystemPrompt)
					assert.Equal(t, "Translate the following:\n\n"+tt.input, req.UserPrompt)
					return tt.reply, nil
				})

			require.NoError(t, p.ProcessText(context.Background(), tt.input))
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestProcessText_ConfiguredDirection(t *testing.T) {
	p, client, out := newTestProcessor(t, cli.NewFlags(), "sk-test")
	p.cfg.UI.Direction = "de-en"

	client.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req translation.ChatRequest) (string, error) {
			assert.Equal(t, "You are the perfect German to English translator.", req.SystemPrompt)
			return "Thank you", nil
		})

	require.NoError(t, p.ProcessText(context.Background(), "Danke"))
	assert.Equal(t, "Thank you\n", out.String())
}

func TestProcessText_Errors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		p, _, out := newTestProcessor(t, cli.NewFlags(), "sk-test")

		err := p.ProcessText(context.Background(), "   ")
		assert.ErrorIs(t, err, translation.ErrEmptyInput)
		assert.Equal(t, "Please enter some text to translate.", p.Describe(err))
		assert.Empty(t, out.String())
	})

	t.Run("no credential", func(t *testing.T) {
		p, _, _ := newTestProcessor(t, cli.NewFlags(), "")

		err := p.ProcessText(context.Background(), "Hello")
		assert.ErrorIs(t, err, translation.ErrCredentialMissing)
		assert.Contains(t, p.Describe(err), "enter your API key")
	})

	t.Run("remote failure", func(t *testing.T) {
		p, client, _ := newTestProcessor(t, cli.NewFlags(), "sk-test")
		client.EXPECT().Complete(gomock.Any(), gomock.Any()).
			Return("", errors.New("upstream unavailable"))

		err := p.ProcessText(context.Background(), "Hello")
		assert.ErrorIs(t, err, translation.ErrTranslation)
		assert.Equal(t, "Translation error: upstream unavailable", p.Describe(err))
	})
}

func TestProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.txt")
	testutil.CreateTestFile(t, path, []byte("Dear Sir,\nthank you.\n"))

	flags := cli.NewFlags()
	flags.InputFile = path
	p, client, out := newTestProcessor(t, flags, "sk-test")

	client.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req translation.ChatRequest) (string, error) {
			assert.Equal(t, "Translate the following:\n\nDear Sir,\nthank you.\n", req.UserPrompt)
			return "Sehr geehrter Herr,\nvielen Dank.", nil
		})

	require.NoError(t, p.ProcessFile(context.Background()))
	assert.Equal(t, "Sehr geehrter Herr,\nvielen Dank.\n", out.String())
}

func TestProcessFile_Stdin(t *testing.T) {
	flags := cli.NewFlags()
	flags.InputFile = "-"
	flags.ToEnglish = true
	p, client, out := newTestProcessor(t, flags, "sk-test")
	p.in = strings.NewReader("Hallo\n")

	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("Hello", nil)

	require.NoError(t, p.ProcessFile(context.Background()))
	assert.Equal(t, "Hello\n", out.String())
}

func TestProcessFile_Missing(t *testing.T) {
	flags := cli.NewFlags()
	flags.InputFile = filepath.Join(t.TempDir(), "missing.txt")
	p, _, _ := newTestProcessor(t, flags, "sk-test")

	err := p.ProcessFile(context.Background())
	require.Error(t, err)
	assert.Contains(t, p.Describe(err), "failed to read input")
}

func TestSetAPIKey(t *testing.T) {
	p, client, out := newTestProcessor(t, cli.NewFlags(), "")
	assert.False(t, p.translator.Ready())

	require.NoError(t, p.SetAPIKey("  sk-new\n"))

	testutil.AssertFileContent(t, p.store.Path(), []byte(`{"api_key":"sk-new"}`))
	testutil.AssertFileMode(t, p.store.Path(), 0600)
	assert.Equal(t, "sk-new", p.store.Load())
	assert.Equal(t, "sk-new", p.translator.Credential())
	assert.Contains(t, out.String(), "API key saved to "+p.store.Path())

	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("Hallo", nil)
	require.NoError(t, p.ProcessText(context.Background(), "Hello"))
}

func TestShowAPIKey(t *testing.T) {
	p, _, out := newTestProcessor(t, cli.NewFlags(), "sk-proj-abcdefgh1234")

	require.NoError(t, p.ShowAPIKey())
	assert.Equal(t, "sk-*************1234 ("+p.store.Path()+")\n", out.String())
	assert.NotContains(t, out.String(), "abcdefgh")
}

func TestShowAPIKey_NoKey(t *testing.T) {
	p, _, _ := newTestProcessor(t, cli.NewFlags(), "")

	assert.ErrorIs(t, p.ShowAPIKey(), translation.ErrCredentialMissing)
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"object":"list","data":[{"id":"gpt-4o","object":"model"},{"id":"chatgpt-4o-latest","object":"model"}]}`)
	}))
	defer server.Close()

	p, _, out := newTestProcessor(t, cli.NewFlags(), "sk-test")
	p.cfg.OpenAI.BaseURL = server.URL

	require.NoError(t, p.ListModels(context.Background()))
	assert.Contains(t, out.String(), " * chatgpt-4o-latest\n")
	assert.Contains(t, out.String(), "   gpt-4o\n")
}

func TestListModels_NoKey(t *testing.T) {
	p, _, _ := newTestProcessor(t, cli.NewFlags(), "")

	assert.ErrorIs(t, p.ListModels(context.Background()), translation.ErrCredentialMissing)
}
