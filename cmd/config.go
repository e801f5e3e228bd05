// Package cmd defines the configuration file structure shared by the stale-pr-reporter commands.
package cmd

import (
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file used when --config is not given
const DefaultConfigFile = "stale-pr-reporter.yaml"

// Hours is a threshold that may be written in YAML as either a number or a string
type Hours string

// UnmarshalYAML accepts any scalar so that `threshold_hours: 24` and `threshold_hours: "24"` both load
func (h *Hours) UnmarshalYAML(node *yaml.Node) error {
	*h = Hours(node.Value)
	return nil
}

// Config represents the structure of stale-pr-reporter.yaml
type Config struct {
	Org                  string       `yaml:"org"`
	Repo                 string       `yaml:"repo"`
	BaseBranch           string       `yaml:"base_branch,omitempty"`
	ThresholdHours       Hours        `yaml:"threshold_hours,omitempty"`
	Language             string       `yaml:"language,omitempty"`
	OnlyRequestedReviews bool         `yaml:"only_requested_reviews,omitempty"`
	IgnoreLabels         string       `yaml:"ignore_labels,omitempty"`
	UserMap              string       `yaml:"user_map,omitempty"`
	ReportTitle          string       `yaml:"report_title,omitempty"`
	GitHub               GitHubConfig `yaml:"github,omitempty"`
	Slack                SlackConfig  `yaml:"slack,omitempty"`
	AI                   AIConfig     `yaml:"ai,omitempty"`
}

// GitHubConfig tunes the pull request source
type GitHubConfig struct {
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// SlackConfig describes where and how the report is delivered. Tokens come from the environment.
type SlackConfig struct {
	Channel        string        `yaml:"channel,omitempty"`
	Username       string        `yaml:"username,omitempty"`
	WebhookDetails string        `yaml:"webhook_details,omitempty"` // skip | flat
	Timeout        time.Duration `yaml:"timeout,omitempty"`
}

// AIConfig tunes the reviewer suggestion. API keys come from the environment.
type AIConfig struct {
	Provider     string        `yaml:"provider,omitempty"` // openai | anthropic
	Model        string        `yaml:"model,omitempty"`
	MaxTokens    int64         `yaml:"max_tokens,omitempty"`
	Temperature  *float64      `yaml:"temperature,omitempty"`
	BodyMaxChars int           `yaml:"body_max_chars,omitempty"`
	BaseURL      string        `yaml:"base_url,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
}
