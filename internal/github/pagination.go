package github

import (
	"github.com/google/go-github/v57/github"
)

// paginatedList calls fetch for each page until the API reports no next page
func paginatedList[T any](fetch func(page int) ([]T, *github.Response, error)) ([]T, error) {
	var all []T
	page := 0

	for {
		items, resp, err := fetch(page)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if resp == nil || resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}

	return all, nil
}
