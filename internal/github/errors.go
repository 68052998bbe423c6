package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v80/github"
)

// ProviderError wraps a failed GitHub call with the operation and
// repository it concerned.
type ProviderError struct {
	Op   string
	Repo string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Repo == "" {
		return fmt.Sprintf("github %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("github %s %s: %v", e.Op, e.Repo, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func wrap(op, owner, repo string, err error) error {
	if err == nil {
		return nil
	}
	name := owner
	if repo != "" {
		name = owner + "/" + repo
	}
	return &ProviderError{Op: op, Repo: name, Err: err}
}

// IsNotFound reports whether err or resp describe a 404.
func IsNotFound(resp *gh.Response, err error) bool {
	if resp != nil && resp.Response != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode == http.StatusNotFound
	}
	return false
}
