package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/alan/stale-pr-reporter/cmd"
	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvSlackBotToken   = "SLACK_BOT_TOKEN"
	EnvSlackWebhookURL = "SLACK_WEBHOOK_URL"
	EnvOpenAIKey       = "OPENAI_API_KEY"
	EnvAnthropicKey    = "ANTHROPIC_API_KEY"
	EnvThreshold       = "STALE_THRESHOLD_HOURS"
	EnvLanguage        = "STALE_LANGUAGE"
	EnvSlackChannel    = "SLACK_CHANNEL"
)

// Secrets are credentials that are only ever read from the environment
type Secrets struct {
	GitHubToken     string
	SlackBotToken   string
	SlackWebhookURL string
	OpenAIKey       string
	AnthropicKey    string
}

// LoadSecrets reads credentials through getenv
func LoadSecrets(getenv func(string) string) Secrets {
	return Secrets{
		GitHubToken:     getenv(EnvGitHubToken),
		SlackBotToken:   getenv(EnvSlackBotToken),
		SlackWebhookURL: getenv(EnvSlackWebhookURL),
		OpenAIKey:       getenv(EnvOpenAIKey),
		AnthropicKey:    getenv(EnvAnthropicKey),
	}
}

// ApplyEnv overrides file values with any non-empty environment overrides
func ApplyEnv(config *cmd.Config, getenv func(string) string) {
	if v := getenv(EnvThreshold); v != "" {
		config.ThresholdHours = cmd.Hours(v)
	}
	if v := getenv(EnvLanguage); v != "" {
		config.Language = v
	}
	if v := getenv(EnvSlackChannel); v != "" {
		config.Slack.Channel = v
	}
}

// LoadDotEnv loads variables from a .env file without overriding ones already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	slog.Debug("Loaded environment file", "path", path)
	return nil
}
