// Package notify renders report documents as Slack Block Kit payloads and delivers them.
package notify

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/alan/stale-pr-reporter/internal/message"
)

// ComposeBlocks turns a document into a header block followed by a single rich text
// section whose elements mirror the fragment order exactly.
func ComposeBlocks(doc message.Document) []slack.Block {
	var blocks []slack.Block
	if doc.Title != "" {
		blocks = append(blocks, slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, doc.Title, true, false)))
	}

	elements := make([]slack.RichTextSectionElement, 0, len(doc.Body))
	for _, f := range doc.Body {
		elements = append(elements, composeElement(f))
	}
	blocks = append(blocks, slack.NewRichTextBlock("", slack.NewRichTextSection(elements...)))

	return blocks
}

func composeElement(f message.Fragment) slack.RichTextSectionElement {
	switch f := f.(type) {
	case message.Text:
		return slack.NewRichTextSectionTextElement(f.Value, nil)
	case message.Bold:
		return slack.NewRichTextSectionTextElement(f.Value, &slack.RichTextSectionTextStyle{Bold: true})
	case message.Link:
		return slack.NewRichTextSectionLinkElement(f.URL, f.Text, nil)
	case message.Mention:
		return slack.NewRichTextSectionUserElement(f.UserID, nil)
	default:
		panic(fmt.Sprintf("notify: unknown fragment type %T", f))
	}
}
