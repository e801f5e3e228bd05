// Package report accumulates stale pull requests into a summary and per-PR detail cards.
package report

import (
	"fmt"
	"strings"

	"github.com/alan/stale-pr-reporter/internal/message"
	"github.com/alan/stale-pr-reporter/internal/staleness"
)

// DefaultTitle is used when no report title is configured
const DefaultTitle = "Stale pull requests"

// maxHeaderRunes is Slack's limit for header block text
const maxHeaderRunes = 150

// State is the run-scoped report being built, one stale PR at a time
type State struct {
	Threshold int
	Total     int
	Exceeded  int
	Summary   []message.Fragment
	Details   []message.Document
	// Skipped holds PRs within the threshold and PRs with unreadable timestamps
	Skipped []staleness.Decision
}

// NewState seeds a report from a partition result. Reportable PRs are added separately with Add.
func NewState(threshold int, result staleness.Result) *State {
	return &State{
		Threshold: threshold,
		Total:     result.Total,
		Skipped:   result.Skipped,
	}
}

// Add appends a summary line and a detail card for one stale PR.
// users maps GitHub logins to chat user IDs; unmapped authors render as "@login".
func (s *State) Add(decision staleness.Decision, suggestion string, users map[string]string) {
	s.Exceeded++
	pr := decision.PR
	title := prLink(pr.Number, pr.Title, pr.URL)
	author := authorFragment(pr.Author, users)

	s.Summary = append(s.Summary,
		message.Text{Value: fmt.Sprintf("%d. ", s.Exceeded)},
		title,
		message.Text{Value: " "},
		author,
		message.Text{Value: fmt.Sprintf(" updated %d hours ago", decision.Updated.Hours)},
	)
	if decision.Updated.Days > 0 {
		s.Summary = append(s.Summary, message.Text{Value: fmt.Sprintf(" (%d day)", decision.Updated.Days)})
	}
	s.Summary = append(s.Summary, message.Text{Value: "\n"})

	s.Details = append(s.Details, message.Document{
		Title: truncate(fmt.Sprintf("#%d %s", pr.Number, pr.Title), maxHeaderRunes),
		Body: []message.Fragment{
			message.Bold{Value: "Title: "}, title, message.Text{Value: " by "}, author, message.Text{Value: "\n"},
			message.Bold{Value: "Created: "}, message.Text{Value: decision.Created.String()}, message.Text{Value: "\n"},
			message.Bold{Value: "Last updated: "}, message.Text{Value: decision.Updated.String()}, message.Text{Value: "\n"},
			message.Bold{Value: "AI suggestion: "}, message.Text{Value: suggestion},
		},
	})
}

// SummaryDocument returns the top-level report: a totals line followed by one line per stale PR
func (s *State) SummaryDocument(title string) message.Document {
	if title == "" {
		title = DefaultTitle
	}
	doc := message.Document{Title: truncate(title, maxHeaderRunes)}

	unreadable := staleness.Unreadable(s.Skipped)

	if s.Exceeded == 0 {
		doc.Append(message.Text{Value: fmt.Sprintf(
			"No stale pull requests: all %d open pull requests were updated within the last %d hours.\n",
			s.Total-len(unreadable), s.Threshold)})
	} else {
		doc.Append(message.Text{Value: fmt.Sprintf(
			"%d of %d open pull requests have not been updated for more than %d hours.\n",
			s.Exceeded, s.Total, s.Threshold)})
		doc.Append(s.Summary...)
	}

	if len(unreadable) > 0 {
		numbers := make([]string, 0, len(unreadable))
		for _, skipped := range unreadable {
			numbers = append(numbers, fmt.Sprintf("#%d", skipped.PR.Number))
		}
		doc.Append(message.Text{Value: fmt.Sprintf("Skipped %d pull requests with unreadable timestamps: %s\n",
			len(unreadable), strings.Join(numbers, ", "))})
	}

	return doc
}

// prLink links the title to the PR, falling back to plain text when the URL is unusable
func prLink(number int, title, url string) message.Fragment {
	if title == "" {
		title = fmt.Sprintf("#%d", number)
	}
	link, err := message.NewLink(title, url)
	if err != nil {
		return message.Text{Value: title}
	}
	return link
}

func authorFragment(login string, users map[string]string) message.Fragment {
	if id, ok := users[login]; ok && id != "" {
		return message.Mention{UserID: id}
	}
	return message.Text{Value: "@" + login}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
