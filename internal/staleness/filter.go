package staleness

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alan/stale-pr-reporter/internal/github"
)

// ErrInvalidThreshold is returned when a threshold is not a whole, non-negative number of hours
var ErrInvalidThreshold = errors.New("invalid threshold")

// Decision is the staleness verdict for a single pull request
type Decision struct {
	PR      github.PullRequest
	Updated TimeDelta
	Created TimeDelta
	Exceeds bool
	Err     error
}

// Result is the outcome of partitioning a set of pull requests.
// Every input lands in exactly one of Reportable or Skipped.
type Result struct {
	Reportable []Decision
	Skipped    []Decision
	Total      int
	Exceeded   int
}

// ParseThreshold coerces a threshold given as text (flag, env or YAML) into whole hours
func ParseThreshold(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidThreshold)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number of hours", ErrInvalidThreshold, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidThreshold, n)
	}
	return n, nil
}

// SortByUpdated orders pull requests by last update, oldest first.
// Ties and unparseable timestamps fall back to PR number so the order is deterministic.
func SortByUpdated(prs []github.PullRequest) {
	sort.SliceStable(prs, func(i, j int) bool {
		ti, erri := parseTimestamp(prs[i].UpdatedAt)
		tj, errj := parseTimestamp(prs[j].UpdatedAt)
		switch {
		case erri != nil && errj != nil:
			return prs[i].Number < prs[j].Number
		case erri != nil:
			return false
		case errj != nil:
			return true
		case !ti.Equal(tj):
			return ti.Before(tj)
		default:
			return prs[i].Number < prs[j].Number
		}
	})
}

// Evaluate computes the deltas for a pull request and whether it is strictly past the threshold
func Evaluate(pr github.PullRequest, threshold int, now time.Time) Decision {
	decision := Decision{PR: pr}

	updated, err := Since(pr.UpdatedAt, now)
	if err != nil {
		decision.Err = fmt.Errorf("failed to parse updated_at of #%d: %w", pr.Number, err)
		return decision
	}
	created, err := Since(pr.CreatedAt, now)
	if err != nil {
		decision.Err = fmt.Errorf("failed to parse created_at of #%d: %w", pr.Number, err)
		return decision
	}

	decision.Updated = updated
	decision.Created = created
	decision.Exceeds = updated.Hours > threshold
	return decision
}

// Partition sorts prs by update time and splits them into reportable and skipped decisions.
// Skipped holds PRs within the threshold and PRs with unreadable timestamps (Err set).
func Partition(prs []github.PullRequest, threshold int, now time.Time) Result {
	sorted := make([]github.PullRequest, len(prs))
	copy(sorted, prs)
	SortByUpdated(sorted)

	result := Result{Total: len(sorted)}
	for _, pr := range sorted {
		decision := Evaluate(pr, threshold, now)
		switch {
		case decision.Err != nil:
			result.Skipped = append(result.Skipped, decision)
		case decision.Exceeds:
			result.Reportable = append(result.Reportable, decision)
		default:
			result.Skipped = append(result.Skipped, decision)
		}
	}
	result.Exceeded = len(result.Reportable)

	return result
}

// Unreadable returns the skipped decisions whose timestamps could not be parsed
func Unreadable(decisions []Decision) []Decision {
	var out []Decision
	for _, d := range decisions {
		if d.Err != nil {
			out = append(out, d)
		}
	}
	return out
}

// Unreadable returns the skipped decisions whose timestamps could not be parsed
func (r Result) Unreadable() []Decision {
	return Unreadable(r.Skipped)
}
