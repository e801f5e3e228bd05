package github

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/go-github/v57/github"
)

// ListOpenPullRequests fetches every open PR in the repository, optionally limited to a base branch.
// Results are ordered by update time ascending as returned by the API; callers re-sort anyway.
func (c *Client) ListOpenPullRequests(ctx context.Context, base string) ([]PullRequest, error) {
	prs, err := paginatedList(func(page int) ([]*github.PullRequest, *github.Response, error) {
		opts := &github.PullRequestListOptions{
			State:     "open",
			Base:      base,
			Sort:      "updated",
			Direction: "asc",
			ListOptions: github.ListOptions{
				PerPage: 100,
				Page:    page,
			},
		}
		slog.Debug("GitHub API: Listing pull requests", "org", c.org, "repo", c.repo, "base", base, "state", "open", "page", page)
		return c.client.PullRequests.List(ctx, c.org, c.repo, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open pull requests: %w", err)
	}

	slog.Debug("GitHub API: Listed pull requests", "org", c.org, "repo", c.repo, "count", len(prs))

	allPRs := make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		allPRs = append(allPRs, convertPullRequest(pr))
	}

	return allPRs, nil
}

// convertPullRequest maps the API model to our PullRequest type
func convertPullRequest(pr *github.PullRequest) PullRequest {
	var labels []string
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}

	var reviewers []string
	for _, user := range pr.RequestedReviewers {
		reviewers = append(reviewers, user.GetLogin())
	}

	var teams []string
	for _, team := range pr.RequestedTeams {
		teams = append(teams, team.GetSlug())
	}

	return PullRequest{
		Number:             pr.GetNumber(),
		Title:              pr.GetTitle(),
		Body:               pr.GetBody(),
		Author:             pr.GetUser().GetLogin(),
		URL:                pr.GetHTMLURL(),
		CreatedAt:          formatTimestamp(pr.CreatedAt),
		UpdatedAt:          formatTimestamp(pr.UpdatedAt),
		Draft:              pr.GetDraft(),
		Labels:             labels,
		RequestedReviewers: reviewers,
		RequestedTeams:     teams,
	}
}

// formatTimestamp renders an API timestamp as RFC 3339, or "" when the API omitted it
func formatTimestamp(ts *github.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
