package notify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/slack-go/slack"
)

// ErrNoTransport is returned by Select when neither a bot token nor a webhook URL is configured
var ErrNoTransport = errors.New("no Slack transport configured")

// Message is a single post: a channel, an optional thread to reply in, and the rendered content
type Message struct {
	Channel  string
	ThreadTS string
	Text     string
	Blocks   []slack.Block
}

// Transport posts messages to Slack
type Transport interface {
	// Post sends the message and returns a handle that later posts can reply to.
	// Transports that cannot thread return "".
	Post(ctx context.Context, msg Message) (string, error)
	// Threaded reports whether Post returns usable thread handles
	Threaded() bool
}

// Settings selects and configures a transport
type Settings struct {
	BotToken   string
	WebhookURL string
	Username   string
	HTTPClient *http.Client
}

// Select picks the transport once per run: the API client when a bot token is set,
// otherwise the incoming webhook.
func Select(s Settings) (Transport, error) {
	switch {
	case s.BotToken != "":
		slog.Debug("Using Slack API client transport")
		var opts []slack.Option
		if s.HTTPClient != nil {
			opts = append(opts, slack.OptionHTTPClient(s.HTTPClient))
		}
		return NewSlackClient(s.BotToken, opts...), nil
	case s.WebhookURL != "":
		slog.Debug("Using Slack webhook transport")
		return NewWebhook(s.WebhookURL, s.Username, s.HTTPClient), nil
	default:
		return nil, ErrNoTransport
	}
}
