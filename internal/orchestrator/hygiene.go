package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tracker-tv/github-hygiene-bot/internal/policy"
	"github.com/tracker-tv/github-hygiene-bot/internal/service"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

type Options struct {
	// FailFast aborts the run on the first repository that fails to scan.
	// The default records the failure and moves on.
	FailFast bool
	Now      func() time.Time
}

// HygieneBot scans every repository of a set of organisations and builds
// the org report with its fix queue.
type HygieneBot struct {
	repos   service.RepositoryService
	scanner service.ScannerService
	policy  *models.Policy
	opts    Options
}

func NewHygieneBot(repos service.RepositoryService, scanner service.ScannerService, p *models.Policy, opts Options) *HygieneBot {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &HygieneBot{repos: repos, scanner: scanner, policy: p, opts: opts}
}

func (b *HygieneBot) Run(ctx context.Context, orgs []string) (*models.OrgReport, error) {
	report := models.NewOrgReport(b.policy.PolicyEpoch, b.opts.Now().UTC())
	queue := newFixQueueBuilder()
	seen := make(map[string]bool)

	for _, org := range orgs {
		log.Info().Str("org", org).Msg("scanning org")

		repos, err := b.repos.ListAll(ctx, org)
		if err != nil {
			if b.opts.FailFast {
				return nil, fmt.Errorf("listing repositories of %s: %w", org, err)
			}
			log.Error().Err(err).Str("org", org).Msg("listing repositories failed")
			failed := failedReport(models.Repository{FullName: org}, err, b.opts.Now())
			failed.Notes = append(failed.Notes, "organisation listing failed")
			report.Repos = append(report.Repos, failed)
			continue
		}

		for _, repo := range repos {
			key := strings.ToLower(repo.FullName)
			if seen[key] {
				continue
			}
			seen[key] = true

			if skip, why := b.skip(repo); skip {
				log.Debug().Str("repo", repo.FullName).Str("reason", why).Msg("skipping repository")
				continue
			}

			rep, err := b.scanner.Scan(ctx, repo)
			if err != nil {
				if b.opts.FailFast {
					return nil, fmt.Errorf("scanning %s: %w", repo.FullName, err)
				}
				log.Error().Err(err).Str("repo", repo.FullName).Msg("repository scan failed")
				report.Repos = append(report.Repos, failedReport(repo, err, b.opts.Now()))
				continue
			}

			report.Repos = append(report.Repos, *rep)
			queue.add(repo.FullName, rep)
		}
	}

	report.FixQueue.Items = queue.items
	log.Info().
		Int("repos", len(report.Repos)).
		Int("failed", len(report.Failures())).
		Int("fix_queue", len(report.FixQueue.Items)).
		Msg("org scan finished")

	return report, nil
}

func (b *HygieneBot) skip(repo models.Repository) (bool, string) {
	if policy.IsExcluded(b.policy, repo.FullName) {
		return true, "excluded"
	}
	if b.policy.Scan.SkipArchived && repo.Archived {
		return true, "archived"
	}
	return false, ""
}

func failedReport(repo models.Repository, err error, now time.Time) models.ScanReport {
	return models.ScanReport{
		Repo:           repo.FullName,
		ScannedAt:      now.UTC(),
		StructureQueue: []models.QueueItem{},
		LogicQueue:     []models.QueueItem{},
		Notes:          []string{},
		Error:          err.Error(),
	}
}
