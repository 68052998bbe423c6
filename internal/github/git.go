package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"
)

func (c *client) GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*gh.Tree, *gh.Response, error) {
	tree, resp, err := c.git.GetTree(ctx, owner, repo, sha, recursive)
	return tree, resp, wrap("get tree", owner, repo, err)
}
