package github

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	github "github.com/tracker-tv/github-hygiene-bot/internal/github/mocks"
)

func encodedFile(content, sha string) *gh.RepositoryContent {
	return &gh.RepositoryContent{
		Type:     gh.Ptr("file"),
		Content:  gh.Ptr(base64.StdEncoding.EncodeToString([]byte(content))),
		Encoding: gh.Ptr("base64"),
		SHA:      gh.Ptr(sha),
	}
}

func TestGetFile_Found(t *testing.T) {
	ctx := context.Background()
	repoSvc := github.NewMockRepositoriesAdapter(t)

	repoSvc.
		EXPECT().
		GetContents(mock.Anything, "org-name", "repo-name", "README.md",
			mock.MatchedBy(func(opts *gh.RepositoryContentGetOptions) bool {
				return opts.Ref == "main"
			}),
		).
		Once().
		Return(encodedFile("# Hello", "abc123"), nil, &gh.Response{}, nil)

	c := &client{repositories: repoSvc}

	content, found, err := c.GetFile(ctx, "org-name", "repo-name", "README.md", "main")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "# Hello", content)
}

func TestGetFile_NotFound(t *testing.T) {
	ctx := context.Background()
	repoSvc := github.NewMockRepositoriesAdapter(t)

	repoSvc.
		EXPECT().
		GetContents(mock.Anything, "org-name", "repo-name", "SECURITY.md", mock.Anything).
		Once().
		Return(nil, nil, &gh.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}, errors.New("404 Not Found"))

	c := &client{repositories: repoSvc}

	content, found, err := c.GetFile(ctx, "org-name", "repo-name", "SECURITY.md", "main")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, content)
}

func TestGetFile_Directory(t *testing.T) {
	ctx := context.Background()
	repoSvc := github.NewMockRepositoriesAdapter(t)

	repoSvc.
		EXPECT().
		GetContents(mock.Anything, "org-name", "repo-name", ".github", mock.Anything).
		Once().
		Return(nil, []*gh.RepositoryContent{{Name: gh.Ptr("workflows")}}, &gh.Response{}, nil)

	c := &client{repositories: repoSvc}

	_, found, err := c.GetFile(ctx, "org-name", "repo-name", ".github", "main")

	assert.NoError(t, err)
	assert.False(t, found)
}

func TestGetFile_ProviderError(t *testing.T) {
	ctx := context.Background()
	repoSvc := github.NewMockRepositoriesAdapter(t)

	repoSvc.
		EXPECT().
		GetContents(mock.Anything, "org-name", "repo-name", "README.md", mock.Anything).
		Once().
		Return(nil, nil, &gh.Response{Response: &http.Response{StatusCode: http.StatusBadGateway}}, errors.New("502 Bad Gateway"))

	c := &client{repositories: repoSvc}

	_, found, err := c.GetFile(ctx, "org-name", "repo-name", "README.md", "main")

	assert.Error(t, err)
	assert.False(t, found)
	var providerErr *ProviderError
	assert.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "org-name/repo-name", providerErr.Repo)
}

func TestGetFileContent_Success(t *testing.T) {
	ctx := context.Background()
	repoSvc := github.NewMockRepositoriesAdapter(t)

	repoSvc.
		EXPECT().
		GetContents(mock.Anything, "org-name", "repo-name", ".github/workflows/ci.yml",
			mock.MatchedBy(func(opts *gh.RepositoryContentGetOptions) bool {
				return opts.Ref == "scw/autopatch/ci-yml"
			}),
		).
		Once().
		Return(encodedFile("name: ci\non: push", "abc123"), nil, &gh.Response{}, nil)

	c := &client{repositories: repoSvc}

	content, sha, err := c.GetFileContent(ctx, "org-name", "repo-name", ".github/workflows/ci.yml", "scw/autopatch/ci-yml")

	assert.NoError(t, err)
	assert.Equal(t, "name: ci\non: push", content)
	assert.Equal(t, "abc123", sha)
}

func TestGetFileContent_NotFound(t *testing.T) {
	ctx := context.Background()
	repoSvc := github.NewMockRepositoriesAdapter(t)

	repoSvc.
		EXPECT().
		GetContents(mock.Anything, "org-name", "repo-name", ".github/workflows/ci.yml", mock.Anything).
		Once().
		Return(nil, nil, nil, errors.New("not found"))

	c := &client{repositories: repoSvc}

	content, sha, err := c.GetFileContent(ctx, "org-name", "repo-name", ".github/workflows/ci.yml", "main")

	assert.Error(t, err)
	assert.Empty(t, content)
	assert.Empty(t, sha)
}

func TestCreateOrUpdateFile_Create(t *testing.T) {
	ctx := context.Background()
	repoSvc := github.NewMockRepositoriesAdapter(t)

	repoSvc.
		EXPECT().
		CreateFile(mock.Anything, "org-name", "repo-name", "SECURITY.md",
			mock.MatchedBy(func(opts *gh.RepositoryContentFileOptions) bool {
				return opts.GetMessage() == "Add SECURITY.md" &&
					opts.GetBranch() == "feature-branch" &&
					string(opts.Content) == "policy content" &&
					opts.SHA == nil
			}),
		).
		Once().
		Return(&gh.RepositoryContentResponse{}, &gh.Response{}, nil)

	c := &client{repositories: repoSvc}

	err := c.CreateOrUpdateFile(ctx, "org-name", "repo-name", "SECURITY.md", "feature-branch", "Add SECURITY.md", "policy content", nil)

	assert.NoError(t, err)
}

func TestCreateOrUpdateFile_Update(t *testing.T) {
	ctx := context.Background()
	repoSvc := github.NewMockRepositoriesAdapter(t)

	fileSHA := "existing-sha"

	repoSvc.
		EXPECT().
		UpdateFile(mock.Anything, "org-name", "repo-name", "README.md",
			mock.MatchedBy(func(opts *gh.RepositoryContentFileOptions) bool {
				return opts.GetMessage() == "Restamp README.md" &&
					opts.GetBranch() == "feature-branch" &&
					string(opts.Content) == "updated content" &&
					opts.GetSHA() == "existing-sha"
			}),
		).
		Once().
		Return(&gh.RepositoryContentResponse{}, &gh.Response{}, nil)

	c := &client{repositories: repoSvc}

	err := c.CreateOrUpdateFile(ctx, "org-name", "repo-name", "README.md", "feature-branch", "Restamp README.md", "updated content", &fileSHA)

	assert.NoError(t, err)
}

func TestCreateOrUpdateFile_Errors(t *testing.T) {
	ctx := context.Background()
	repoSvc := github.NewMockRepositoriesAdapter(t)
	fileSHA := "existing-sha"

	repoSvc.
		EXPECT().
		CreateFile(mock.Anything, "org-name", "repo-name", mock.Anything, mock.Anything).
		Once().
		Return(nil, nil, errors.New("permission denied"))

	repoSvc.
		EXPECT().
		UpdateFile(mock.Anything, "org-name", "repo-name", mock.Anything, mock.Anything).
		Once().
		Return(nil, nil, errors.New("conflict"))

	c := &client{repositories: repoSvc}

	err := c.CreateOrUpdateFile(ctx, "org-name", "repo-name", "README.md", "b", "m", "content", nil)
	assert.ErrorContains(t, err, "permission denied")

	err = c.CreateOrUpdateFile(ctx, "org-name", "repo-name", "README.md", "b", "m", "content", &fileSHA)
	assert.ErrorContains(t, err, "conflict")
}
