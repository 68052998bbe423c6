package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"
)

const headsPrefix = "refs/heads/"

func (c *client) GetBranch(ctx context.Context, owner, repo, branch string) (*gh.Reference, error) {
	ref, _, err := c.references.GetRef(ctx, owner, repo, headsPrefix+branch)
	if err != nil {
		return nil, wrap("get branch "+branch, owner, repo, err)
	}
	return ref, nil
}

func (c *client) CreateBranch(ctx context.Context, owner, repo, branchName, baseSHA string) error {
	_, _, err := c.references.CreateRef(ctx, owner, repo, gh.CreateRef{
		Ref: headsPrefix + branchName,
		SHA: baseSHA,
	})
	return wrap("create branch "+branchName, owner, repo, err)
}
