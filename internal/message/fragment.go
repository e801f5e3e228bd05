// Package message models report content as an ordered list of formatting fragments,
// independent of how a transport eventually renders it.
package message

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidLink is returned when a link has no text or no absolute http(s) URL
var ErrInvalidLink = errors.New("invalid link")

// Fragment is one piece of formatted content. The set of variants is closed.
type Fragment interface {
	fragment()
}

// Text is plain, unstyled text
type Text struct {
	Value string
}

// Bold is text rendered in bold
type Bold struct {
	Value string
}

// Link is a hyperlink with display text
type Link struct {
	Text string
	URL  string
}

// Mention refers to a chat user by ID
type Mention struct {
	UserID string
}

func (Text) fragment()    {}
func (Bold) fragment()    {}
func (Link) fragment()    {}
func (Mention) fragment() {}

// NewLink builds a Link after checking the text is non-empty and the URL is absolute http(s)
func NewLink(text, rawURL string) (Link, error) {
	if text == "" {
		return Link{}, fmt.Errorf("%w: empty text", ErrInvalidLink)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Link{}, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidLink, rawURL)
	}
	return Link{Text: text, URL: rawURL}, nil
}
