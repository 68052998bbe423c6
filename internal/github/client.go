package github

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v80/github"
)

// Client is the repository provider used by the scanner and the autopatch
// executor. Repositories are addressed by owner and name.
type Client interface {
	ListAllRepos(ctx context.Context, org string) ([]*gh.Repository, error)
	GetDefaultBranch(ctx context.Context, owner, repo string) (string, error)
	GetFile(ctx context.Context, owner, repo, path, ref string) (string, bool, error)
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, string, error)
	CreateOrUpdateFile(ctx context.Context, owner, repo, path, branch, message, content string, fileSHA *string) error
	GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*gh.Tree, *gh.Response, error)
	GetBranch(ctx context.Context, owner, repo, branch string) (*gh.Reference, error)
	CreateBranch(ctx context.Context, owner, repo, branchName, baseSHA string) error
	ListPullRequests(ctx context.Context, owner, repo string, opts *gh.PullRequestListOptions) ([]*gh.PullRequest, error)
	CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string) (*gh.PullRequest, error)
	FindPullRequestByBranch(ctx context.Context, owner, repo, branchName string) (*gh.PullRequest, error)
}

type RepositoriesAdapter interface {
	ListByOrg(ctx context.Context, org string, opts *gh.RepositoryListByOrgOptions) ([]*gh.Repository, *gh.Response, error)
	Get(ctx context.Context, owner, repo string) (*gh.Repository, *gh.Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error)
	CreateFile(ctx context.Context, owner, repo, path string, opts *gh.RepositoryContentFileOptions) (*gh.RepositoryContentResponse, *gh.Response, error)
	UpdateFile(ctx context.Context, owner, repo, path string, opts *gh.RepositoryContentFileOptions) (*gh.RepositoryContentResponse, *gh.Response, error)
}

type PullRequestsAdapter interface {
	List(ctx context.Context, owner, repo string, opts *gh.PullRequestListOptions) ([]*gh.PullRequest, *gh.Response, error)
	Create(ctx context.Context, owner, repo string, pull *gh.NewPullRequest) (*gh.PullRequest, *gh.Response, error)
}

type GitAdapter interface {
	GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*gh.Tree, *gh.Response, error)
}

type ReferencesAdapter interface {
	GetRef(ctx context.Context, owner, repo, ref string) (*gh.Reference, *gh.Response, error)
	CreateRef(ctx context.Context, owner, repo string, ref gh.CreateRef) (*gh.Reference, *gh.Response, error)
}

type Options struct {
	// MaxPages bounds org repository pagination. Zero means unbounded.
	MaxPages int
	// MaxRetries is the number of rate-limit retries per page.
	MaxRetries int
}

type client struct {
	repositories RepositoriesAdapter
	pullRequests PullRequestsAdapter
	git          GitAdapter
	references   ReferencesAdapter
	opts         Options
}

type authTransport struct {
	token string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

func New(token string, opts Options) Client {
	var httpClient *http.Client
	if token != "" {
		httpClient = &http.Client{
			Transport: &authTransport{
				token: token,
			},
		}
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 5
	}
	c := gh.NewClient(httpClient)
	return &client{
		repositories: c.Repositories,
		pullRequests: c.PullRequests,
		git:          c.Git,
		references:   c.Git,
		opts:         opts,
	}
}
