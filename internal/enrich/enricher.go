package enrich

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// FallbackSuggestion is used whenever no suggestion could be generated
const FallbackSuggestion = "No AI suggestion generated this run."

// Settings tunes the prompt and the completion call
type Settings struct {
	Language     string
	Model        string
	MaxTokens    int64
	Temperature  float64
	BodyMaxChars int
	Timeout      time.Duration
}

// Enricher produces reviewer suggestions. A nil Enricher, or one without a completer,
// always returns FallbackSuggestion.
type Enricher struct {
	completer Completer
	settings  Settings
}

// NewEnricher wraps a completer; completer may be nil to disable enrichment
func NewEnricher(completer Completer, settings Settings) *Enricher {
	if settings.Language == "" {
		settings.Language = "English"
	}
	return &Enricher{completer: completer, settings: settings}
}

// Enabled reports whether suggestions will actually be requested
func (e *Enricher) Enabled() bool {
	return e != nil && e.completer != nil
}

// Suggest summarizes a PR and recommends a reviewer profile. It never fails:
// any error is logged and replaced by FallbackSuggestion.
func (e *Enricher) Suggest(ctx context.Context, title, body string) string {
	if !e.Enabled() {
		return FallbackSuggestion
	}

	if e.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.settings.Timeout)
		defer cancel()
	}

	text, err := e.completer.Complete(ctx, Request{
		Prompt:      BuildPrompt(e.settings.Language, title, body, e.settings.BodyMaxChars),
		Model:       e.settings.Model,
		MaxTokens:   e.settings.MaxTokens,
		Temperature: e.settings.Temperature,
	})
	if err != nil {
		slog.Warn("AI suggestion failed, using fallback", "title", title, "error", err)
		return FallbackSuggestion
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackSuggestion
	}
	return text
}
