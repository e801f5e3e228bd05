package github

// PullRequest is the read-only view of an open pull request used by the report
type PullRequest struct {
	Number    int
	Title     string
	Body      string
	Author    string
	URL       string
	CreatedAt string // ISO-8601 as returned by the API; empty when missing
	UpdatedAt string // ISO-8601 as returned by the API; empty when missing
	Draft     bool
	Labels    []string

	RequestedReviewers []string // reviewer logins
	RequestedTeams     []string // team slugs
}
