package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"
)

// GetFile returns the decoded content of path at ref. A missing path, or a
// path that is not a regular file, yields found == false and no error.
func (c *client) GetFile(ctx context.Context, owner, repo, path, ref string) (string, bool, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, resp, err := c.repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		if IsNotFound(resp, err) {
			return "", false, nil
		}
		return "", false, wrap("get contents "+path, owner, repo, err)
	}
	if content == nil || content.GetType() != "file" {
		return "", false, nil
	}
	decoded, err := content.GetContent()
	if err != nil {
		return "", false, wrap("decode "+path, owner, repo, err)
	}
	return decoded, true, nil
}

func (c *client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, string, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, _, err := c.repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return "", "", wrap("get contents "+path, owner, repo, err)
	}
	if content == nil {
		return "", "", fmt.Errorf("%s is not a file", path)
	}
	decoded, err := content.GetContent()
	if err != nil {
		return "", "", wrap("decode "+path, owner, repo, err)
	}
	return decoded, content.GetSHA(), nil
}

func (c *client) CreateOrUpdateFile(ctx context.Context, owner, repo, path, branch, message, content string, fileSHA *string) error {
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(message),
		Content: []byte(content),
		Branch:  gh.Ptr(branch),
	}
	if fileSHA != nil {
		opts.SHA = fileSHA
	}

	if fileSHA == nil {
		_, _, err := c.repositories.CreateFile(ctx, owner, repo, path, opts)
		return wrap("create file "+path, owner, repo, err)
	}
	_, _, err := c.repositories.UpdateFile(ctx, owner, repo, path, opts)
	return wrap("update file "+path, owner, repo, err)
}
