package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/alan/stale-pr-reporter/internal/notify"
)

// FormatOutcome summarizes a delivery for the console
func FormatOutcome(outcome notify.Outcome) string {
	var msg strings.Builder

	if outcome.SummaryPosted {
		msg.WriteString(fmt.Sprintf("✅ Posted %d message(s)\n", outcome.Posted))
	} else {
		msg.WriteString("❌ Report was not posted\n")
	}
	if outcome.SkippedDetails > 0 {
		msg.WriteString(fmt.Sprintf("⏭️  Skipped %d detail card(s)\n", outcome.SkippedDetails))
	}
	for _, failure := range outcome.Failed {
		if failure.Index < 0 {
			msg.WriteString(fmt.Sprintf("⚠️  Summary failed: %v\n", failure.Err))
			continue
		}
		msg.WriteString(fmt.Sprintf("⚠️  %s failed: %v\n", failure.Title, failure.Err))
	}

	return msg.String()
}

// DisplayOutcome writes the delivery summary to w
func DisplayOutcome(w io.Writer, outcome notify.Outcome) {
	fmt.Fprint(w, FormatOutcome(outcome))
}
