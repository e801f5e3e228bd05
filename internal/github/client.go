// Package github wraps the GitHub API for reading a repository's open pull requests.
package github

import (
	"context"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub API client
type Client struct {
	client *github.Client
	org    string
	repo   string
}

// NewClient creates a new GitHub client with token authentication
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
	}
}

// WithRepository returns a copy of the client scoped to org/repo
func (c *Client) WithRepository(org, repo string) *Client {
	return &Client{
		client: c.client,
		org:    org,
		repo:   repo,
	}
}

// Repository returns the "org/repo" the client is scoped to
func (c *Client) Repository() string {
	return c.org + "/" + c.repo
}
