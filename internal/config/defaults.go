package config

import (
	"time"

	"github.com/alan/stale-pr-reporter/cmd"
	"github.com/alan/stale-pr-reporter/internal/enrich"
	"github.com/alan/stale-pr-reporter/internal/notify"
	"github.com/alan/stale-pr-reporter/internal/report"
)

const (
	DefaultThresholdHours = "24"
	DefaultLanguage       = "English"
	DefaultGitHubTimeout  = 30 * time.Second
	DefaultSlackTimeout   = 30 * time.Second
	DefaultAITimeout      = 60 * time.Second
	DefaultAIModel        = "gpt-4o-mini"
	DefaultClaudeModel    = "claude-sonnet-4-0"
	DefaultMaxTokens      = 500
	DefaultTemperature    = 0.7
	DefaultBodyMaxChars   = 2000
)

// ApplyDefaults fills every unset field with its default
func ApplyDefaults(config *cmd.Config) {
	if config.ThresholdHours == "" {
		config.ThresholdHours = DefaultThresholdHours
	}
	if config.Language == "" {
		config.Language = DefaultLanguage
	}
	if config.ReportTitle == "" {
		config.ReportTitle = report.DefaultTitle
	}
	if config.GitHub.Timeout == 0 {
		config.GitHub.Timeout = DefaultGitHubTimeout
	}

	if config.Slack.Username == "" {
		config.Slack.Username = notify.DefaultUsername
	}
	if config.Slack.WebhookDetails == "" {
		config.Slack.WebhookDetails = string(notify.DetailsSkip)
	}
	if config.Slack.Timeout == 0 {
		config.Slack.Timeout = DefaultSlackTimeout
	}

	if config.AI.Provider == "" {
		config.AI.Provider = string(enrich.ProviderOpenAI)
	}
	if config.AI.Model == "" {
		if config.AI.Provider == string(enrich.ProviderAnthropic) {
			config.AI.Model = DefaultClaudeModel
		} else {
			config.AI.Model = DefaultAIModel
		}
	}
	if config.AI.MaxTokens == 0 {
		config.AI.MaxTokens = DefaultMaxTokens
	}
	if config.AI.Temperature == nil {
		temperature := DefaultTemperature
		config.AI.Temperature = &temperature
	}
	if config.AI.BodyMaxChars == 0 {
		config.AI.BodyMaxChars = DefaultBodyMaxChars
	}
	if config.AI.Timeout == 0 {
		config.AI.Timeout = DefaultAITimeout
	}
}
