package message

import (
	"fmt"
	"strings"
)

// Document is a titled, ordered sequence of fragments
type Document struct {
	Title string
	Body  []Fragment
}

// Append adds fragments to the end of the body
func (d *Document) Append(fragments ...Fragment) {
	d.Body = append(d.Body, fragments...)
}

// PlainText renders the document without formatting. It is used for notification
// fallback text and console previews.
func PlainText(doc Document) string {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(doc.Title)
		b.WriteString("\n")
	}
	b.WriteString(BodyText(doc.Body))
	return b.String()
}

// BodyText renders fragments without formatting
func BodyText(fragments []Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		switch f := f.(type) {
		case Text:
			b.WriteString(f.Value)
		case Bold:
			b.WriteString(f.Value)
		case Link:
			fmt.Fprintf(&b, "%s (%s)", f.Text, f.URL)
		case Mention:
			fmt.Fprintf(&b, "<@%s>", f.UserID)
		default:
			panic(fmt.Sprintf("message: unknown fragment type %T", f))
		}
	}
	return b.String()
}
