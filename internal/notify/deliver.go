package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alan/stale-pr-reporter/internal/message"
)

// DetailPolicy decides what happens to detail cards when the transport cannot thread
type DetailPolicy string

const (
	// DetailsSkip posts only the summary
	DetailsSkip DetailPolicy = "skip"
	// DetailsFlat posts every detail as an independent top-level message
	DetailsFlat DetailPolicy = "flat"
)

// ParseDetailPolicy validates a policy name; empty selects DetailsSkip
func ParseDetailPolicy(s string) (DetailPolicy, error) {
	switch DetailPolicy(s) {
	case "", DetailsSkip:
		return DetailsSkip, nil
	case DetailsFlat:
		return DetailsFlat, nil
	default:
		return "", fmt.Errorf("unknown detail policy %q (want %q or %q)", s, DetailsSkip, DetailsFlat)
	}
}

// Failure records one post that could not be delivered. Index is -1 for the summary.
type Failure struct {
	Index int
	Title string
	Err   error
}

// Outcome summarizes a delivery
type Outcome struct {
	SummaryPosted  bool
	ThreadTS       string
	Posted         int
	SkippedDetails int
	Failed         []Failure
}

// Err joins every recorded failure, or returns nil when everything was delivered
func (o Outcome) Err() error {
	var errs []error
	for _, f := range o.Failed {
		if f.Index < 0 {
			errs = append(errs, fmt.Errorf("summary: %w", f.Err))
		} else {
			errs = append(errs, fmt.Errorf("detail %q: %w", f.Title, f.Err))
		}
	}
	return errors.Join(errs...)
}

// Deliver posts the summary, then each detail in order as a reply to the summary.
// A failed detail does not stop the rest. If the summary fails nothing else is posted.
// A timeout > 0 bounds each post individually.
func Deliver(ctx context.Context, t Transport, channel string, summary message.Document, details []message.Document, policy DetailPolicy, timeout time.Duration) Outcome {
	out := postSummary(ctx, t, channel, summary, timeout)
	if !out.SummaryPosted {
		out.SkippedDetails = len(details)
		return out
	}
	return postDetails(ctx, t, channel, out, details, policy, timeout)
}

// postSummary posts the top-level report and records the thread handle in the outcome
func postSummary(ctx context.Context, t Transport, channel string, summary message.Document, timeout time.Duration) Outcome {
	var out Outcome

	ts, err := post(ctx, t, timeout, channel, "", summary)
	if err != nil {
		slog.Warn("Failed to post summary", "error", err)
		out.Failed = append(out.Failed, Failure{Index: -1, Title: summary.Title, Err: err})
		return out
	}
	out.SummaryPosted = true
	out.ThreadTS = ts
	out.Posted++

	return out
}

// postDetails posts each detail as a reply to out.ThreadTS, continuing past failures.
// When the transport cannot thread, policy decides between skipping and posting flat.
func postDetails(ctx context.Context, t Transport, channel string, out Outcome, details []message.Document, policy DetailPolicy, timeout time.Duration) Outcome {
	threadTS := out.ThreadTS
	if !t.Threaded() || threadTS == "" {
		if policy != DetailsFlat {
			if len(details) > 0 {
				slog.Info("Transport cannot thread replies, skipping details", "details", len(details))
			}
			out.SkippedDetails += len(details)
			return out
		}
		threadTS = ""
	}

	for i, detail := range details {
		if _, err := post(ctx, t, timeout, channel, threadTS, detail); err != nil {
			slog.Warn("Failed to post detail", "title", detail.Title, "error", err)
			out.Failed = append(out.Failed, Failure{Index: i, Title: detail.Title, Err: err})
			continue
		}
		out.Posted++
	}

	return out
}

func post(ctx context.Context, t Transport, timeout time.Duration, channel, threadTS string, doc message.Document) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return t.Post(ctx, Message{
		Channel:  channel,
		ThreadTS: threadTS,
		Text:     message.PlainText(doc),
		Blocks:   ComposeBlocks(doc),
	})
}
