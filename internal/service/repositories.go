package service

import (
	"context"

	"github.com/tracker-tv/github-hygiene-bot/internal/github"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

type RepositoryService interface {
	ListAll(ctx context.Context, org string) ([]models.Repository, error)
}

type repositoriesService struct {
	gh github.Client
}

func NewRepositoriesService(ghClient github.Client) RepositoryService {
	return &repositoriesService{gh: ghClient}
}

func (s *repositoriesService) ListAll(ctx context.Context, org string) ([]models.Repository, error) {
	repos, err := s.gh.ListAllRepos(ctx, org)
	if err != nil {
		return nil, err
	}

	result := make([]models.Repository, 0, len(repos))

	for _, repo := range repos {
		if repo == nil {
			continue
		}

		owner := repo.GetOwner().GetLogin()
		if owner == "" {
			owner = org
		}
		fullName := repo.GetFullName()
		if fullName == "" {
			fullName = owner + "/" + repo.GetName()
		}

		result = append(result, models.Repository{
			Name:     repo.GetName(),
			FullName: fullName,
			Owner:    owner,
			Private:  repo.GetPrivate(),
			Archived: repo.GetArchived(),
		})
	}

	return result, nil
}
