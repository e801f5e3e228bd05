package status

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan/stale-pr-reporter/cmd"
	"github.com/alan/stale-pr-reporter/internal/commands"
	"github.com/alan/stale-pr-reporter/internal/config"
	"github.com/alan/stale-pr-reporter/internal/github"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type fakeFetcher struct {
	prs []github.PullRequest
	err error
}

func (f *fakeFetcher) ListOpenPullRequests(context.Context, string) ([]github.PullRequest, error) {
	return f.prs, f.err
}

func hoursAgo(h int) string {
	return now.Add(-time.Duration(h) * time.Hour).Format(time.RFC3339)
}

func newTestCommand(fetcher *fakeFetcher) *command {
	return newTestCommandWithConfig(fetcher, func(*cmd.Config) {})
}

func newTestCommandWithConfig(fetcher *fakeFetcher, configure func(*cmd.Config)) *command {
	configFile := "unused.yaml"
	return &command{
		BaseCommand: commands.BaseCommand{
			ConfigFile: &configFile,
			LoadConfig: func(string) (*cmd.Config, error) {
				c := &cmd.Config{Org: "acme", Repo: "widgets"}
				configure(c)
				config.ApplyDefaults(c)
				return c, nil
			},
			Getenv: func(key string) string {
				if key == "GITHUB_TOKEN" {
					return "test-token"
				}
				return ""
			},
		},
		fetcher: fetcher,
		now:     func() time.Time { return now },
	}
}

func TestNewStatusCmd(t *testing.T) {
	configFile := "test-config.yaml"
	statusCmd := NewStatusCmd(&configFile, config.Load)

	assert.Equal(t, "status", statusCmd.Use)
	assert.NotNil(t, statusCmd.Flags().Lookup("threshold"))
}

func TestRunStatus(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	fetcher := &fakeFetcher{prs: []github.PullRequest{
		{Number: 1, Title: "Fresh", Author: "a", CreatedAt: hoursAgo(5), UpdatedAt: hoursAgo(3)},
		{Number: 2, Title: "Stale", Author: "b", Draft: true, CreatedAt: hoursAgo(60), UpdatedAt: hoursAgo(30)},
		{Number: 3, Title: "Broken", CreatedAt: hoursAgo(1), UpdatedAt: "bad"},
	}}
	var out bytes.Buffer

	err := newTestCommand(fetcher).run(context.Background(), &out)

	require.NoError(t, err)
	output := out.String()
	assert.Contains(t, output, "Open pull requests for acme/widgets (all branches, threshold 24 hours)")
	assert.Contains(t, output, "#2      Stale @b [draft]")
	assert.Contains(t, output, "stale: updated 30 hours ago (1 day), created 60 hours ago (2 day)")
	assert.Contains(t, output, "fresh: updated 3 hours ago (0 day)")
	assert.Contains(t, output, "skipped:")
	assert.Contains(t, output, "Summary: 3 PR(s), 1 stale, 1 fresh, 1 skipped")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Stale")), bytes.Index(out.Bytes(), []byte("Fresh")), "oldest update first")
}

func TestRunStatus_NoPRs(t *testing.T) {
	var out bytes.Buffer

	err := newTestCommand(&fakeFetcher{}).run(context.Background(), &out)

	require.NoError(t, err)
	assert.Equal(t, "No open pull requests.\n", out.String())
}

func TestRunStatus_FetchError(t *testing.T) {
	err := newTestCommand(&fakeFetcher{err: errors.New("boom")}).run(context.Background(), &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch pull requests")
}

func TestRunStatus_ThresholdOverride(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	fetcher := &fakeFetcher{prs: []github.PullRequest{
		{Number: 1, Title: "Fresh", CreatedAt: hoursAgo(5), UpdatedAt: hoursAgo(3)},
	}}
	c := newTestCommand(fetcher)
	c.threshold = "2"
	var out bytes.Buffer

	require.NoError(t, c.run(context.Background(), &out))
	assert.Contains(t, out.String(), "Summary: 1 PR(s), 1 stale, 0 fresh, 0 skipped")
}

func TestRunStatus_AppliesReportFilters(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	fetcher := &fakeFetcher{prs: []github.PullRequest{
		{Number: 1, Title: "Reviewed", RequestedReviewers: []string{"hubot"}, CreatedAt: hoursAgo(50), UpdatedAt: hoursAgo(40)},
		{Number: 2, Title: "Unrequested", CreatedAt: hoursAgo(50), UpdatedAt: hoursAgo(45)},
		{Number: 3, Title: "Parked", Labels: []string{"wip"}, RequestedReviewers: []string{"hubot"}, CreatedAt: hoursAgo(90), UpdatedAt: hoursAgo(80)},
	}}
	c := newTestCommandWithConfig(fetcher, func(config *cmd.Config) {
		config.OnlyRequestedReviews = true
		config.IgnoreLabels = "wip, do-not-review"
	})
	var out bytes.Buffer

	require.NoError(t, c.run(context.Background(), &out))
	output := out.String()
	assert.Contains(t, output, "#1      Reviewed")
	assert.NotContains(t, output, "Unrequested")
	assert.NotContains(t, output, "Parked")
	assert.Contains(t, output, "Summary: 1 PR(s), 1 stale, 0 fresh, 0 skipped")
	assert.Contains(t, output, "Filtered out 2 PR(s) by reviewer or label settings")
}
