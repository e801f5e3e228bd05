package config

import (
	"errors"
	"fmt"

	"github.com/alan/stale-pr-reporter/cmd"
	"github.com/alan/stale-pr-reporter/internal/enrich"
	"github.com/alan/stale-pr-reporter/internal/notify"
	"github.com/alan/stale-pr-reporter/internal/report"
	"github.com/alan/stale-pr-reporter/internal/staleness"
)

// Validate checks a defaulted configuration and reports every problem at once
func Validate(config *cmd.Config) error {
	var errs []error

	if config.Org == "" {
		errs = append(errs, errors.New("org is required"))
	}
	if config.Repo == "" {
		errs = append(errs, errors.New("repo is required"))
	}
	if _, err := staleness.ParseThreshold(string(config.ThresholdHours)); err != nil {
		errs = append(errs, fmt.Errorf("threshold_hours: %w", err))
	}
	if _, err := notify.ParseDetailPolicy(config.Slack.WebhookDetails); err != nil {
		errs = append(errs, fmt.Errorf("slack.webhook_details: %w", err))
	}
	switch enrich.Provider(config.AI.Provider) {
	case "", enrich.ProviderOpenAI, enrich.ProviderAnthropic:
	default:
		errs = append(errs, fmt.Errorf("ai.provider: unknown provider %q", config.AI.Provider))
	}
	if config.UserMap != "" && !report.ValidUserMap(config.UserMap) {
		errs = append(errs, fmt.Errorf("user_map: %q is not in login:ID[,login:ID...] format", config.UserMap))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Threshold returns the configured threshold in whole hours
func Threshold(config *cmd.Config) (int, error) {
	return staleness.ParseThreshold(string(config.ThresholdHours))
}
