package github

import (
	"strings"
)

// WithRequestedReviewers keeps PRs that have at least one requested reviewer or team
func WithRequestedReviewers(prs []PullRequest) []PullRequest {
	var filtered []PullRequest
	for _, pr := range prs {
		if len(pr.RequestedReviewers) > 0 || len(pr.RequestedTeams) > 0 {
			filtered = append(filtered, pr)
		}
	}
	return filtered
}

// WithoutLabels drops PRs carrying any of the comma-separated ignore labels.
// An empty list keeps everything.
func WithoutLabels(prs []PullRequest, ignoreLabels string) []PullRequest {
	ignored := parseLabelList(ignoreLabels)
	if len(ignored) == 0 {
		return prs
	}

	var filtered []PullRequest
	for _, pr := range prs {
		if !hasAnyLabel(pr, ignored) {
			filtered = append(filtered, pr)
		}
	}
	return filtered
}

// CountRequestedReviewers sums the requested reviewers across PRs
func CountRequestedReviewers(prs []PullRequest) int {
	total := 0
	for _, pr := range prs {
		total += len(pr.RequestedReviewers)
	}
	return total
}

// parseLabelList splits "a, b ,c" into a set
func parseLabelList(s string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		label := strings.TrimSpace(part)
		if label != "" {
			set[label] = true
		}
	}
	return set
}

func hasAnyLabel(pr PullRequest, labels map[string]bool) bool {
	for _, label := range pr.Labels {
		if labels[label] {
			return true
		}
	}
	return false
}
