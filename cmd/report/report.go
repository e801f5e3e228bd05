// Package report implements the report command, which finds stale pull requests and posts them to Slack.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/alan/stale-pr-reporter/cmd"
	"github.com/alan/stale-pr-reporter/internal/commands"
	"github.com/alan/stale-pr-reporter/internal/config"
	"github.com/alan/stale-pr-reporter/internal/enrich"
	"github.com/alan/stale-pr-reporter/internal/notify"
	"github.com/alan/stale-pr-reporter/internal/pipeline"
	"github.com/alan/stale-pr-reporter/internal/report"
	"github.com/alan/stale-pr-reporter/internal/transport"
)

// NewReportCmd creates and returns the report command
func NewReportCmd(globalConfigFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	c := &command{}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Report stale pull requests to Slack",
		Long: `Report lists the repository's open pull requests, picks the ones that have not
been updated for more than the threshold, asks the configured AI provider for a short
summary and reviewer suggestion, and posts a summary plus one detail card per pull
request to Slack.

With a bot token (SLACK_BOT_TOKEN) detail cards are posted as thread replies.
With only a webhook (SLACK_WEBHOOK_URL) they are skipped or posted flat depending
on slack.webhook_details.`,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			c.BaseCommand = commands.BaseCommand{
				ConfigFile: globalConfigFile,
				LoadConfig: loadConfig,
			}
			return c.run(cobraCmd.Context(), cobraCmd.OutOrStdout())
		},
	}

	reportCmd.Flags().StringVarP(&c.threshold, "threshold", "t", "", "Staleness threshold in hours (overrides threshold_hours)")
	reportCmd.Flags().StringVar(&c.language, "language", "", "Language for AI suggestions (overrides language)")
	reportCmd.Flags().BoolVar(&c.dryRun, "dry-run", false, "Print the report instead of posting it")
	reportCmd.Flags().BoolVar(&c.noAI, "no-ai", false, "Skip AI suggestions")
	reportCmd.Flags().BoolVar(&c.failOnDeliveryError, "fail-on-delivery-error", false, "Exit non-zero when any Slack post fails")

	return reportCmd
}

type command struct {
	commands.BaseCommand
	threshold           string
	language            string
	dryRun              bool
	noAI                bool
	failOnDeliveryError bool

	// set by tests
	fetcher    pipeline.Fetcher
	httpClient *http.Client
}

func (c *command) run(ctx context.Context, out io.Writer) error {
	if err := c.Init(ctx); err != nil {
		return err
	}
	c.applyFlags()

	opts, err := c.options()
	if err != nil {
		return err
	}

	if c.httpClient == nil {
		c.httpClient = transport.NewClient()
	}
	enricher, err := c.newEnricher()
	if err != nil {
		return err
	}
	tr, err := c.newTransport()
	if err != nil {
		return err
	}

	fetcher := c.fetcher
	if fetcher == nil {
		fetcher = c.GitHubClient
	}

	runner := pipeline.NewRunner(fetcher, enricher, tr, opts)
	result, err := runner.Run(c.Context)
	if result != nil {
		if c.dryRun {
			displayPreview(out, result, c.Config.Slack.Channel)
		} else if result.Delivered {
			commands.DisplayOutcome(out, result.Outcome)
		}
	}
	return err
}

// applyFlags lets command-line flags override file and environment values
func (c *command) applyFlags() {
	if c.threshold != "" {
		c.Config.ThresholdHours = cmd.Hours(c.threshold)
	}
	if c.language != "" {
		c.Config.Language = c.language
	}
}

func (c *command) options() (pipeline.Options, error) {
	threshold, err := config.Threshold(c.Config)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("invalid threshold: %w", err)
	}
	users, err := report.ParseUserMap(c.Config.UserMap)
	if err != nil {
		return pipeline.Options{}, err
	}
	policy, err := notify.ParseDetailPolicy(c.Config.Slack.WebhookDetails)
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		BaseBranch:           c.Config.BaseBranch,
		Threshold:            threshold,
		OnlyRequestedReviews: c.Config.OnlyRequestedReviews,
		IgnoreLabels:         c.Config.IgnoreLabels,
		Users:                users,
		Title:                c.Config.ReportTitle,
		Channel:              c.Config.Slack.Channel,
		DetailPolicy:         policy,
		FetchTimeout:         c.Config.GitHub.Timeout,
		PostTimeout:          c.Config.Slack.Timeout,
		FailOnDeliveryError:  c.failOnDeliveryError,
		SkipDelivery:         c.dryRun,
	}, nil
}

func (c *command) newEnricher() (*enrich.Enricher, error) {
	settings := enrich.Settings{
		Language:     c.Config.Language,
		Model:        c.Config.AI.Model,
		MaxTokens:    c.Config.AI.MaxTokens,
		BodyMaxChars: c.Config.AI.BodyMaxChars,
		Timeout:      c.Config.AI.Timeout,
	}
	if c.Config.AI.Temperature != nil {
		settings.Temperature = *c.Config.AI.Temperature
	}
	if c.noAI {
		return enrich.NewEnricher(nil, settings), nil
	}

	completer, err := enrich.NewCompleter(enrich.ProviderSettings{
		Provider:     enrich.Provider(c.Config.AI.Provider),
		OpenAIKey:    c.Secrets.OpenAIKey,
		AnthropicKey: c.Secrets.AnthropicKey,
		BaseURL:      c.Config.AI.BaseURL,
		HTTPClient:   c.httpClient,
	})
	if err != nil {
		return nil, err
	}
	return enrich.NewEnricher(completer, settings), nil
}

// newTransport returns nil when nothing is configured; the run still completes without delivery
func (c *command) newTransport() (notify.Transport, error) {
	if c.dryRun {
		return nil, nil
	}
	tr, err := notify.Select(notify.Settings{
		BotToken:   c.Secrets.SlackBotToken,
		WebhookURL: c.Secrets.SlackWebhookURL,
		Username:   c.Config.Slack.Username,
		HTTPClient: c.httpClient,
	})
	if errors.Is(err, notify.ErrNoTransport) {
		return nil, nil
	}
	return tr, err
}
