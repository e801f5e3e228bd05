// Package enrich asks a language model to summarize a pull request and suggest a reviewer profile.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoChoices is returned when the completion response carries no choices
	ErrNoChoices = errors.New("completion returned no choices")
	// ErrEmptyCompletion is returned when the completion text is blank
	ErrEmptyCompletion = errors.New("completion returned empty text")
)

// Provider names a completion service
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Request is a single non-streaming completion request
type Request struct {
	Prompt      string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Completer turns a prompt into generated text
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ProviderSettings holds what is needed to build a completer
type ProviderSettings struct {
	Provider     Provider
	OpenAIKey    string
	AnthropicKey string
	BaseURL      string
	HTTPClient   *http.Client
}

// NewCompleter builds the completer for the configured provider.
// It returns nil without error when the provider's API key is missing, which disables enrichment.
func NewCompleter(s ProviderSettings) (Completer, error) {
	switch s.Provider {
	case "", ProviderOpenAI:
		if s.OpenAIKey == "" {
			return nil, nil
		}
		return NewOpenAI(s.OpenAIKey, s.BaseURL, s.HTTPClient), nil
	case ProviderAnthropic:
		if s.AnthropicKey == "" {
			return nil, nil
		}
		return NewAnthropic(s.AnthropicKey, s.BaseURL, s.HTTPClient), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q (want %q or %q)", s.Provider, ProviderOpenAI, ProviderAnthropic)
	}
}
