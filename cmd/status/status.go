// Package status implements the status command for listing open PRs and how long they have waited.
package status

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alan/stale-pr-reporter/cmd"
	"github.com/alan/stale-pr-reporter/internal/commands"
	"github.com/alan/stale-pr-reporter/internal/config"
	"github.com/alan/stale-pr-reporter/internal/github"
	"github.com/alan/stale-pr-reporter/internal/pipeline"
	"github.com/alan/stale-pr-reporter/internal/staleness"
)

// NewStatusCmd creates and returns the status command
func NewStatusCmd(globalConfigFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	c := &command{}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show open PRs and how long since each was updated",
		Long: `Display the open pull requests the report would consider, stale ones first and
oldest update first within each group, with the hours since each was created and
last updated. The only_requested_reviews and ignore_labels settings apply exactly as
they do for report. Nothing is posted and no AI suggestions are requested.`,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			c.BaseCommand = commands.BaseCommand{
				ConfigFile: globalConfigFile,
				LoadConfig: loadConfig,
			}
			return c.run(cobraCmd.Context(), cobraCmd.OutOrStdout())
		},
	}

	statusCmd.Flags().StringVarP(&c.threshold, "threshold", "t", "", "Staleness threshold in hours (overrides threshold_hours)")

	return statusCmd
}

type command struct {
	commands.BaseCommand
	threshold string

	fetcher pipeline.Fetcher
	now     func() time.Time
}

func (c *command) run(ctx context.Context, out io.Writer) error {
	if err := c.Init(ctx); err != nil {
		return err
	}
	if c.threshold != "" {
		c.Config.ThresholdHours = cmd.Hours(c.threshold)
	}
	threshold, err := config.Threshold(c.Config)
	if err != nil {
		return fmt.Errorf("invalid threshold: %w", err)
	}

	fetcher := c.fetcher
	if fetcher == nil {
		fetcher = c.GitHubClient
	}
	if c.now == nil {
		c.now = time.Now
	}

	fetchCtx := c.Context
	if c.Config.GitHub.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(c.Context, c.Config.GitHub.Timeout)
		defer cancel()
	}
	prs, err := fetcher.ListOpenPullRequests(fetchCtx, c.Config.BaseBranch)
	if err != nil {
		return fmt.Errorf("failed to fetch pull requests: %w", err)
	}

	if len(prs) == 0 {
		fmt.Fprintln(out, "No open pull requests.")
		return nil
	}

	partition := pipeline.Partition(prs, pipeline.Options{
		Threshold:            threshold,
		OnlyRequestedReviews: c.Config.OnlyRequestedReviews,
		IgnoreLabels:         c.Config.IgnoreLabels,
		Now:                  c.now,
	})

	displayRepositoryHeader(out, c.Config, threshold)
	displayDecisions(out, partition.Reportable)
	displayDecisions(out, partition.Skipped)
	fmt.Fprintln(out)
	displayStatusSummary(out, partition, len(prs))
	return nil
}

func displayRepositoryHeader(out io.Writer, config *cmd.Config, threshold int) {
	base := config.BaseBranch
	if base == "" {
		base = "all branches"
	}
	fmt.Fprintf(out, "Open pull requests for %s/%s (%s, threshold %d hours)\n\n", config.Org, config.Repo, base, threshold)
}

func displayDecisions(out io.Writer, decisions []staleness.Decision) {
	for _, d := range decisions {
		displayDecision(out, d)
	}
}

func displayDecision(out io.Writer, d staleness.Decision) {
	fmt.Fprintf(out, "#%-6d %s%s\n", d.PR.Number, d.PR.Title, flags(d.PR))

	switch {
	case d.Err != nil:
		color.New(color.FgYellow).Fprintf(out, "        ⚠️  skipped: %v\n", d.Err)
	case d.Exceeds:
		color.New(color.FgRed).Fprintf(out, "        ⏳ stale: updated %s, created %s\n", d.Updated, d.Created)
	default:
		color.New(color.FgGreen).Fprintf(out, "        ✅ fresh: updated %s, created %s\n", d.Updated, d.Created)
	}
}

func flags(pr github.PullRequest) string {
	s := ""
	if pr.Author != "" {
		s += " @" + pr.Author
	}
	if pr.Draft {
		s += " [draft]"
	}
	return s
}

func displayStatusSummary(out io.Writer, partition staleness.Result, fetched int) {
	unreadable := len(partition.Unreadable())
	fresh := len(partition.Skipped) - unreadable
	fmt.Fprintf(out, "Summary: %d PR(s), %d stale, %d fresh, %d skipped\n", partition.Total, partition.Exceeded, fresh, unreadable)
	if filtered := fetched - partition.Total; filtered > 0 {
		fmt.Fprintf(out, "Filtered out %d PR(s) by reviewer or label settings\n", filtered)
	}
}
