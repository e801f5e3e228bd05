package enrich

import (
	"fmt"
	"regexp"
	"strings"
)

// NoDescription replaces an empty PR body in the prompt
const NoDescription = "(no description provided)"

const promptTemplate = `You are helping a team triage pull requests that are waiting for review.
For the pull request below:
1. Summarize what it changes in one or two sentences.
2. Recommend the background or expertise the reviewer should have.
Answer in %s, in a single short paragraph.

Title: %s
Description: %s`

var newlines = regexp.MustCompile(`[\r\n]+`)

// BuildPrompt fills the fixed template. Newlines in title and body are collapsed to spaces;
// an empty body becomes NoDescription and a body longer than maxBody runes is truncated.
func BuildPrompt(language, title, body string, maxBody int) string {
	body = strings.TrimSpace(collapse(body))
	if body == "" {
		body = NoDescription
	} else if maxBody > 0 {
		if runes := []rune(body); len(runes) > maxBody {
			body = string(runes[:maxBody]) + "…"
		}
	}
	return fmt.Sprintf(promptTemplate, language, strings.TrimSpace(collapse(title)), body)
}

func collapse(s string) string {
	return newlines.ReplaceAllString(s, " ")
}
