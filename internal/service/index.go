package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tracker-tv/github-hygiene-bot/internal/github"
	"github.com/tracker-tv/github-hygiene-bot/internal/policy"
	"github.com/tracker-tv/github-hygiene-bot/internal/svmeta"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

// IndexService reads and maintains the committed file index of a
// repository.
type IndexService interface {
	// Read returns nil when the index is absent, unparseable or carries the
	// wrong signature.
	Read(ctx context.Context, repo models.Repository, ref string) (*models.FileIndex, error)
	Build(ctx context.Context, repo models.Repository, ref string) (*models.FileIndex, error)
	Publish(ctx context.Context, repo models.Repository, branch string, idx *models.FileIndex) error
}

type indexService struct {
	gh     github.Client
	policy *models.Policy
	now    func() time.Time
}

func NewIndexService(ghClient github.Client, p *models.Policy) IndexService {
	return &indexService{
		gh:     ghClient,
		policy: p,
		now:    time.Now,
	}
}

func (s *indexService) path() string {
	if s.policy.Scan.IndexPath != "" {
		return s.policy.Scan.IndexPath
	}
	return models.DefaultIndexPath
}

func (s *indexService) Read(ctx context.Context, repo models.Repository, ref string) (*models.FileIndex, error) {
	raw, found, err := s.gh.GetFile(ctx, repo.Owner, repo.Name, s.path(), ref)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	idx, ok := parseIndex(raw)
	if !ok {
		log.Debug().Str("repo", repo.FullName).Str("path", s.path()).Msg("ignoring index without fileindex:v1 signature")
		return nil, nil
	}
	return idx, nil
}

func parseIndex(raw string) (*models.FileIndex, bool) {
	var idx models.FileIndex
	if err := json.Unmarshal([]byte(raw), &idx); err != nil {
		return nil, false
	}
	if idx.Sig != models.FileIndexSig {
		return nil, false
	}
	return &idx, true
}

// Build walks the tree at ref and records the metadata of every versioned
// file that is either required by the policy or matches scan.index_globs.
func (s *indexService) Build(ctx context.Context, repo models.Repository, ref string) (*models.FileIndex, error) {
	tree, _, err := s.gh.GetTree(ctx, repo.Owner, repo.Name, ref, true)
	if err != nil {
		return nil, err
	}
	if tree.GetTruncated() {
		log.Warn().Str("repo", repo.FullName).Msg("git tree truncated, index may be incomplete")
	}

	required := make(map[string]bool, len(s.policy.RequiredFiles))
	for _, f := range s.policy.RequiredFiles {
		required[f.Path] = true
	}

	idx := &models.FileIndex{
		Sig:         models.FileIndexSig,
		Repo:        repo.FullName,
		Ref:         ref,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Files:       []models.IndexEntry{},
	}

	for _, entry := range tree.Entries {
		path := entry.GetPath()
		if entry.GetType() != "blob" || path == s.path() {
			continue
		}
		if !required[path] && !policy.MatchTree(path, s.policy.Scan.IndexGlobs) {
			continue
		}

		text, found, err := s.gh.GetFile(ctx, repo.Owner, repo.Name, path, ref)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		meta, versioned := svmeta.Parse(text)
		if !versioned {
			continue
		}

		idx.Files = append(idx.Files, models.IndexEntry{
			Path:    path,
			Kind:    meta.Kind,
			Module:  meta.Module,
			Version: meta.Version,
			BuildID: meta.BuildID,
			Epoch:   meta.Epoch,
			Hash:    svmeta.ContentHash(text),
		})
	}

	return idx, nil
}

func (s *indexService) Publish(ctx context.Context, repo models.Repository, branch string, idx *models.FileIndex) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}

	var sha *string
	if _, existing, err := s.gh.GetFileContent(ctx, repo.Owner, repo.Name, s.path(), branch); err == nil {
		sha = &existing
	}

	msg := fmt.Sprintf("chore(scw): refresh %s", s.path())
	if err := s.gh.CreateOrUpdateFile(ctx, repo.Owner, repo.Name, s.path(), branch, msg, string(data)+"\n", sha); err != nil {
		return fmt.Errorf("publishing index: %w", err)
	}
	return nil
}
