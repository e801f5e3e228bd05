package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
)

// SlackClient posts through the Slack Web API and supports threaded replies
type SlackClient struct {
	api *slack.Client
}

// NewSlackClient creates a client authenticated with a bot token
func NewSlackClient(token string, opts ...slack.Option) *SlackClient {
	return &SlackClient{api: slack.New(token, opts...)}
}

// Post sends msg with chat.postMessage and returns the message timestamp
func (c *SlackClient) Post(ctx context.Context, msg Message) (string, error) {
	options := []slack.MsgOption{
		slack.MsgOptionBlocks(msg.Blocks...),
		slack.MsgOptionText(msg.Text, false),
	}
	if msg.ThreadTS != "" {
		options = append(options, slack.MsgOptionTS(msg.ThreadTS))
	}

	slog.Debug("Slack API: Posting message", "channel", msg.Channel, "thread_ts", msg.ThreadTS, "blocks", len(msg.Blocks))
	_, ts, err := c.api.PostMessageContext(ctx, msg.Channel, options...)
	if err != nil {
		return "", fmt.Errorf("failed to post message to %s: %w", msg.Channel, err)
	}
	return ts, nil
}

// Threaded is always true for the API client
func (c *SlackClient) Threaded() bool {
	return true
}
