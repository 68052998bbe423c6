package service

import (
	"context"
	"errors"
	"testing"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	githubMocks "github.com/tracker-tv/github-hygiene-bot/internal/github/mocks"
)

func TestNewRepositoriesService(t *testing.T) {
	mockClient := githubMocks.NewMockClient(t)

	svc := NewRepositoriesService(mockClient)

	assert.NotNil(t, svc)
	assert.Implements(t, (*RepositoryService)(nil), svc)
}

func TestListAll_Success(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)

	repos := []*gh.Repository{
		{
			Name:     gh.Ptr("repo1"),
			FullName: gh.Ptr("StegVerse/repo1"),
			Owner:    &gh.User{Login: gh.Ptr("StegVerse")},
			Private:  gh.Ptr(false),
			Archived: gh.Ptr(false),
		},
		{
			Name:     gh.Ptr("repo2"),
			FullName: gh.Ptr("StegVerse/repo2"),
			Owner:    &gh.User{Login: gh.Ptr("StegVerse")},
			Private:  gh.Ptr(true),
			Archived: gh.Ptr(true),
		},
	}

	mockClient.
		EXPECT().
		ListAllRepos(mock.Anything, "StegVerse").
		Once().
		Return(repos, nil)

	svc := NewRepositoriesService(mockClient)
	result, err := svc.ListAll(ctx, "StegVerse")

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "repo1", result[0].Name)
	assert.Equal(t, "StegVerse/repo1", result[0].FullName)
	assert.Equal(t, "StegVerse", result[0].Owner)
	assert.False(t, result[0].Private)
	assert.False(t, result[0].Archived)
	assert.Equal(t, "repo2", result[1].Name)
	assert.True(t, result[1].Private)
	assert.True(t, result[1].Archived)
}

func TestListAll_SkipsNilAndFillsMissingNames(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)

	repos := []*gh.Repository{
		nil,
		{Name: gh.Ptr("bare")},
	}

	mockClient.
		EXPECT().
		ListAllRepos(mock.Anything, "StegVerse-Labs").
		Once().
		Return(repos, nil)

	svc := NewRepositoriesService(mockClient)
	result, err := svc.ListAll(ctx, "StegVerse-Labs")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "StegVerse-Labs", result[0].Owner)
	assert.Equal(t, "StegVerse-Labs/bare", result[0].FullName)
}

func TestListAll_Error(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)

	mockClient.
		EXPECT().
		ListAllRepos(mock.Anything, "StegVerse").
		Once().
		Return(nil, errors.New("API error"))

	svc := NewRepositoriesService(mockClient)
	result, err := svc.ListAll(ctx, "StegVerse")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "API error")
}

func TestListAll_Empty(t *testing.T) {
	ctx := context.Background()
	mockClient := githubMocks.NewMockClient(t)

	mockClient.
		EXPECT().
		ListAllRepos(mock.Anything, "StegVerse").
		Once().
		Return([]*gh.Repository{}, nil)

	svc := NewRepositoriesService(mockClient)
	result, err := svc.ListAll(ctx, "StegVerse")

	assert.NoError(t, err)
	assert.Empty(t, result)
}
