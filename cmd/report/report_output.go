package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/alan/stale-pr-reporter/internal/message"
	"github.com/alan/stale-pr-reporter/internal/pipeline"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	boldColor    = color.New(color.Bold)
	linkColor    = color.New(color.FgBlue, color.Underline)
	mentionColor = color.New(color.FgMagenta)
	dimColor     = color.New(color.FgHiBlack)
)

// displayPreview prints what would have been posted
func displayPreview(w io.Writer, result *pipeline.Result, channel string) {
	if channel == "" {
		channel = "(default channel)"
	}
	dimColor.Fprintf(w, "Dry run: nothing was posted to %s\n\n", channel)

	renderDocument(w, result.Summary, "")
	for _, detail := range result.State.Details {
		fmt.Fprintln(w)
		renderDocument(w, detail, "  ")
	}
}

// renderDocument prints a document, styling fragments roughly as Slack would
func renderDocument(w io.Writer, doc message.Document, indent string) {
	if doc.Title != "" {
		fmt.Fprint(w, indent)
		titleColor.Fprintln(w, doc.Title)
	}

	fmt.Fprint(w, indent)
	for _, f := range doc.Body {
		switch f := f.(type) {
		case message.Text:
			fmt.Fprint(w, indentLines(f.Value, indent))
		case message.Bold:
			boldColor.Fprint(w, f.Value)
		case message.Link:
			linkColor.Fprint(w, f.Text)
			dimColor.Fprintf(w, " <%s>", f.URL)
		case message.Mention:
			mentionColor.Fprintf(w, "@%s", f.UserID)
		default:
			panic(fmt.Sprintf("report: unknown fragment type %T", f))
		}
	}
	fmt.Fprintln(w)
}

func indentLines(s, indent string) string {
	if indent == "" {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, r)
		if r == '\n' {
			out = append(out, []rune(indent)...)
		}
	}
	return string(out)
}
