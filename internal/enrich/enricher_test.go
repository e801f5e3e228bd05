package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	requests     []Request
	completeFunc func(ctx context.Context, req Request) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, req Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.completeFunc != nil {
		return f.completeFunc(ctx, req)
	}
	return "Summary.", nil
}

func TestSuggest(t *testing.T) {
	completer := &fakeCompleter{
		completeFunc: func(context.Context, Request) (string, error) {
			return "\n  Refactors the cache.\n\n- Reviewer: someone who knows Redis.\n- Also: an SRE.\n", nil
		},
	}
	enricher := NewEnricher(completer, Settings{Language: "Traditional Chinese", Model: "gpt-4o-mini", MaxTokens: 300, Temperature: 0.2})

	suggestion := enricher.Suggest(context.Background(), "Cache\nrefactor", "Moves things around")

	assert.Equal(t, "Refactors the cache.\n\n- Reviewer: someone who knows Redis.\n- Also: an SRE.", suggestion, "reply keeps its line structure")
	require.Len(t, completer.requests, 1)
	req := completer.requests[0]
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, int64(300), req.MaxTokens)
	assert.Equal(t, 0.2, req.Temperature)
	assert.Contains(t, req.Prompt, "Answer in Traditional Chinese")
	assert.Contains(t, req.Prompt, "Title: Cache refactor\n")
}

func TestSuggest_FailureFallsBack(t *testing.T) {
	tests := []struct {
		name string
		fn   func(context.Context, Request) (string, error)
	}{
		{
			name: "transport error",
			fn:   func(context.Context, Request) (string, error) { return "", errors.New("connection refused") },
		},
		{
			name: "no choices",
			fn:   func(context.Context, Request) (string, error) { return "", ErrNoChoices },
		},
		{
			name: "blank text",
			fn:   func(context.Context, Request) (string, error) { return " \n ", nil },
		},
		{
			name: "deadline",
			fn: func(ctx context.Context, _ Request) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enricher := NewEnricher(&fakeCompleter{completeFunc: tt.fn}, Settings{Timeout: 10 * time.Millisecond})

			assert.Equal(t, FallbackSuggestion, enricher.Suggest(context.Background(), "t", "b"))
		})
	}
}

func TestSuggest_Disabled(t *testing.T) {
	var nilEnricher *Enricher
	assert.False(t, nilEnricher.Enabled())
	assert.Equal(t, FallbackSuggestion, nilEnricher.Suggest(context.Background(), "t", "b"))

	enricher := NewEnricher(nil, Settings{})
	assert.False(t, enricher.Enabled())
	assert.Equal(t, FallbackSuggestion, enricher.Suggest(context.Background(), "t", "b"))
}

func TestNewCompleter(t *testing.T) {
	tests := []struct {
		name     string
		settings ProviderSettings
		check    func(t *testing.T, c Completer)
		wantErr  bool
	}{
		{
			name:     "openai by default",
			settings: ProviderSettings{OpenAIKey: "sk-test"},
			check: func(t *testing.T, c Completer) {
				_, ok := c.(*OpenAI)
				assert.True(t, ok)
			},
		},
		{
			name:     "anthropic",
			settings: ProviderSettings{Provider: ProviderAnthropic, AnthropicKey: "sk-ant"},
			check: func(t *testing.T, c Completer) {
				_, ok := c.(*Anthropic)
				assert.True(t, ok)
			},
		},
		{
			name:     "missing key disables",
			settings: ProviderSettings{Provider: ProviderAnthropic, OpenAIKey: "sk-test"},
			check: func(t *testing.T, c Completer) {
				assert.Nil(t, c)
			},
		},
		{
			name:     "unknown provider",
			settings: ProviderSettings{Provider: "gemini", OpenAIKey: "x"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCompleter(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}
