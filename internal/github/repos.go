package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/rs/zerolog/log"
)

func (c *client) ListAllRepos(ctx context.Context, org string) ([]*gh.Repository, error) {
	var allRepos []*gh.Repository
	opts := &gh.RepositoryListByOrgOptions{
		Type: "all",
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	for page := 1; ; page++ {
		repos, resp, err := c.listAllReposWithRetry(ctx, org, opts)
		if err != nil {
			return nil, wrap("list repos", org, "", err)
		}

		allRepos = append(allRepos, repos...)

		if resp == nil || resp.NextPage == 0 {
			break
		}
		if c.opts.MaxPages > 0 && page >= c.opts.MaxPages {
			log.Warn().Str("org", org).Int("pages", page).Msg("repository listing truncated at page limit")
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func (c *client) listAllReposWithRetry(ctx context.Context, org string, opts *gh.RepositoryListByOrgOptions) ([]*gh.Repository, *gh.Response, error) {
	maxRetries := c.opts.MaxRetries
	baseDelay := 1 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		repos, resp, err := c.repositories.ListByOrg(ctx, org, opts)

		if err == nil {
			return repos, resp, nil
		}

		var rateLimitErr *gh.RateLimitError
		ok := errors.As(err, &rateLimitErr)
		if !ok {
			return nil, nil, err
		}

		if attempt == maxRetries {
			return nil, nil, fmt.Errorf("max retries reached: %w", err)
		}

		waitDuration := time.Until(rateLimitErr.Rate.Reset.Time)
		if waitDuration < 0 {
			waitDuration = baseDelay * time.Duration(1<<attempt)
		}
		log.Warn().Str("org", org).Dur("wait", waitDuration).Int("attempt", attempt+1).Msg("rate limited, backing off")

		select {
		case <-time.After(waitDuration):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	return nil, nil, fmt.Errorf("unexpected retry loop exit")
}

func (c *client) GetDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	r, _, err := c.repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", wrap("get repository", owner, repo, err)
	}
	if branch := r.GetDefaultBranch(); branch != "" {
		return branch, nil
	}
	return "main", nil
}
