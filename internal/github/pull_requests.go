package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"
)

func (c *client) ListPullRequests(ctx context.Context, owner, repo string, opts *gh.PullRequestListOptions) ([]*gh.PullRequest, error) {
	prs, _, err := c.pullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, wrap("list pull requests", owner, repo, err)
	}
	return prs, nil
}

func (c *client) CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string) (*gh.PullRequest, error) {
	created, _, err := c.pullRequests.Create(ctx, owner, repo, &gh.NewPullRequest{
		Title: gh.Ptr(title),
		Body:  gh.Ptr(body),
		Head:  gh.Ptr(head),
		Base:  gh.Ptr(base),
	})
	if err != nil {
		return nil, wrap("create pull request", owner, repo, err)
	}
	return created, nil
}

// FindPullRequestByBranch returns the open pull request whose head is
// branchName, or nil when there is none.
func (c *client) FindPullRequestByBranch(ctx context.Context, owner, repo, branchName string) (*gh.PullRequest, error) {
	prs, err := c.ListPullRequests(ctx, owner, repo, &gh.PullRequestListOptions{
		Head:  owner + ":" + branchName,
		State: "open",
	})
	if err != nil || len(prs) == 0 {
		return nil, err
	}
	return prs[0], nil
}
