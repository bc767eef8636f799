package translation

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

var (
	// ErrCredentialMissing means no API key is configured
	ErrCredentialMissing = errors.New("OpenAI API key not found")
	// ErrEmptyInput means there was nothing to translate
	ErrEmptyInput = errors.New("nothing to translate")
	// ErrNetwork means the API could not be reached
	ErrNetwork = errors.New("network error")
	// ErrAuth means the API rejected the configured key
	ErrAuth = errors.New("authentication failed")
	// ErrTranslation covers every other failure of the remote call
	ErrTranslation = errors.New("translation error")
)

// Kind is the classification of a translation failure
type Kind int

const (
	KindNone Kind = iota
	KindCredentialMissing
	KindEmptyInput
	KindNetwork
	KindAuth
	KindTranslation
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCredentialMissing:
		return "credential_missing"
	case KindEmptyInput:
		return "empty_input"
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	default:
		return "translation"
	}
}

// KindOf reports the classification of err. Errors not produced by this
// package are reported as KindTranslation.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrCredentialMissing):
		return KindCredentialMissing
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrAuth):
		return KindAuth
	default:
		return KindTranslation
	}
}

// Cause strips the classification prefix and returns the underlying error,
// or nil for errors without one.
func Cause(err error) error {
	var c *classified
	if errors.As(err, &c) {
		return c.cause
	}
	return nil
}

type classified struct {
	kind  error
	cause error
}

func (c *classified) Error() string {
	if c.cause == nil {
		return c.kind.Error()
	}
	return c.kind.Error() + ": " + c.cause.Error()
}

func (c *classified) Unwrap() []error {
	if c.cause == nil {
		return []error{c.kind}
	}
	return []error{c.kind, c.cause}
}

func wrap(kind, cause error) error {
	return &classified{kind: kind, cause: cause}
}

// classify maps a chat client failure onto the package's sentinels
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrCredentialMissing, ErrEmptyInput, ErrNetwork, ErrAuth, ErrTranslation} {
		if errors.Is(err, kind) {
			return err
		}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusUnauthorized {
			return wrap(ErrAuth, err)
		}
		return wrap(ErrTranslation, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return wrap(ErrNetwork, err)
	}

	return wrap(ErrTranslation, err)
}
