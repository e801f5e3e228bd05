package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/slack-go/slack"
)

// DefaultUsername is the display name used for webhook posts when none is configured
const DefaultUsername = "Pull Request reviews reminder"

// Webhook posts through an incoming webhook. Webhooks return no message handle,
// so replies cannot be threaded.
type Webhook struct {
	url        string
	username   string
	httpClient *http.Client
}

// NewWebhook creates a webhook transport. A nil httpClient uses http.DefaultClient.
func NewWebhook(url, username string, httpClient *http.Client) *Webhook {
	if username == "" {
		username = DefaultUsername
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Webhook{url: url, username: username, httpClient: httpClient}
}

// Post sends msg to the webhook; the returned handle is always empty
func (w *Webhook) Post(ctx context.Context, msg Message) (string, error) {
	payload := &slack.WebhookMessage{
		Channel:  msg.Channel,
		Username: w.username,
		Text:     msg.Text,
		Blocks:   &slack.Blocks{BlockSet: msg.Blocks},
	}

	slog.Debug("Slack webhook: Posting message", "channel", msg.Channel, "blocks", len(msg.Blocks))
	if err := slack.PostWebhookCustomHTTPContext(ctx, w.url, w.httpClient, payload); err != nil {
		return "", fmt.Errorf("failed to post webhook message: %w", err)
	}
	return "", nil
}

// Threaded is always false for webhooks
func (w *Webhook) Threaded() bool {
	return false
}
