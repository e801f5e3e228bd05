// Package pipeline runs one stale pull request report: fetch, filter, enrich, aggregate, deliver.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alan/stale-pr-reporter/internal/github"
	"github.com/alan/stale-pr-reporter/internal/message"
	"github.com/alan/stale-pr-reporter/internal/notify"
	"github.com/alan/stale-pr-reporter/internal/report"
	"github.com/alan/stale-pr-reporter/internal/staleness"
)

// ErrDelivery is wrapped by Run's error when FailOnDeliveryError is set and a post failed
var ErrDelivery = errors.New("delivery failed")

// Fetcher lists the open pull requests of the configured repository
type Fetcher interface {
	ListOpenPullRequests(ctx context.Context, base string) ([]github.PullRequest, error)
}

// Suggester produces a reviewer suggestion for one PR; it must not fail
type Suggester interface {
	Suggest(ctx context.Context, title, body string) string
}

// Options configures a run
type Options struct {
	BaseBranch           string
	Threshold            int
	OnlyRequestedReviews bool
	IgnoreLabels         string
	Users                map[string]string
	Title                string
	Channel              string
	DetailPolicy         notify.DetailPolicy
	FetchTimeout         time.Duration
	PostTimeout          time.Duration
	FailOnDeliveryError  bool
	SkipDelivery         bool
	Now                  func() time.Time
}

// Result is everything a run produced
type Result struct {
	State     *report.State
	Summary   message.Document
	Delivered bool
	Outcome   notify.Outcome
}

// Runner executes report runs. Processing is strictly sequential.
type Runner struct {
	fetcher   Fetcher
	suggester Suggester
	transport notify.Transport
	opts      Options
	phase     Phase
}

// NewRunner creates a runner. transport may be nil, in which case delivery is skipped.
func NewRunner(fetcher Fetcher, suggester Suggester, transport notify.Transport, opts Options) *Runner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DetailPolicy == "" {
		opts.DetailPolicy = notify.DetailsSkip
	}
	return &Runner{
		fetcher:   fetcher,
		suggester: suggester,
		transport: transport,
		opts:      opts,
	}
}

// Phase returns the phase the runner is currently in
func (r *Runner) Phase() Phase {
	return r.phase
}

func (r *Runner) transition(p Phase) {
	slog.Debug("Pipeline phase transition", "from", r.phase.String(), "to", p.String())
	r.phase = p
}

// Run performs one report. Only a fetch failure (or, when requested, a delivery failure)
// is returned as an error; per-PR and per-post problems are logged and recorded.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	r.transition(PhaseFetching)
	prs, err := r.fetch(ctx)
	if err != nil {
		r.transition(PhaseFailed)
		return nil, fmt.Errorf("failed to fetch pull requests: %w", err)
	}

	r.transition(PhaseFiltering)
	partition := r.filter(prs)

	r.transition(PhaseEnriching)
	state := report.NewState(r.opts.Threshold, partition)
	for _, decision := range partition.Reportable {
		if err := ctx.Err(); err != nil {
			r.transition(PhaseFailed)
			return nil, fmt.Errorf("run cancelled: %w", err)
		}
		suggestion := r.suggester.Suggest(ctx, decision.PR.Title, decision.PR.Body)
		state.Add(decision, suggestion, r.opts.Users)
	}

	result := &Result{State: state, Summary: state.SummaryDocument(r.opts.Title)}

	if r.opts.SkipDelivery {
		slog.Debug("Delivery disabled for this run", "stale", state.Exceeded)
		r.transition(PhaseDone)
		return result, nil
	}
	if r.transport == nil {
		slog.Warn("No Slack transport configured, skipping delivery", "stale", state.Exceeded)
		r.transition(PhaseDone)
		return result, nil
	}

	outcome := notify.Deliver(ctx, r.transport, r.opts.Channel, result.Summary, state.Details, r.opts.DetailPolicy, r.opts.PostTimeout)
	if outcome.SummaryPosted {
		r.transition(PhaseReportPosted)
		r.transition(PhaseDetailsPosting)
	}
	result.Delivered = true
	result.Outcome = outcome

	slog.Info("Report delivered",
		"stale", state.Exceeded,
		"total", state.Total,
		"posted", outcome.Posted,
		"failed", len(outcome.Failed),
		"skipped_details", outcome.SkippedDetails)

	r.transition(PhaseDone)

	if r.opts.FailOnDeliveryError {
		if err := outcome.Err(); err != nil {
			return result, fmt.Errorf("%w: %w", ErrDelivery, err)
		}
	}
	return result, nil
}

func (r *Runner) fetch(ctx context.Context) ([]github.PullRequest, error) {
	if r.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.FetchTimeout)
		defer cancel()
	}
	return r.fetcher.ListOpenPullRequests(ctx, r.opts.BaseBranch)
}

func (r *Runner) filter(prs []github.PullRequest) staleness.Result {
	slog.Info("Fetched open pull requests",
		"count", len(prs),
		"requested_reviewers", github.CountRequestedReviewers(prs))

	partition := Partition(prs, r.opts)
	for _, skipped := range partition.Unreadable() {
		slog.Warn("Skipping pull request with unreadable timestamp", "number", skipped.PR.Number, "error", skipped.Err)
	}
	slog.Info("Evaluated pull requests",
		"considered", partition.Total,
		"stale", partition.Exceeded,
		"skipped", len(partition.Skipped),
		"threshold_hours", r.opts.Threshold)

	return partition
}

// Partition applies the reviewer and label filters from opts, then splits the remaining PRs by staleness
func Partition(prs []github.PullRequest, opts Options) staleness.Result {
	if opts.OnlyRequestedReviews {
		prs = github.WithRequestedReviewers(prs)
	}
	prs = github.WithoutLabels(prs, opts.IgnoreLabels)

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	return staleness.Partition(prs, opts.Threshold, now())
}
