package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tracker-tv/github-hygiene-bot/internal/github"
	"github.com/tracker-tv/github-hygiene-bot/internal/policy"
	"github.com/tracker-tv/github-hygiene-bot/internal/risk"
	"github.com/tracker-tv/github-hygiene-bot/internal/svmeta"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

// ScannerService evaluates the required files of one repository.
type ScannerService interface {
	Scan(ctx context.Context, repo models.Repository) (*models.ScanReport, error)
}

type ScannerOption func(*scannerService)

// WithClock overrides the time source used for scanned_utc.
func WithClock(now func() time.Time) ScannerOption {
	return func(s *scannerService) {
		s.now = now
	}
}

type scannerService struct {
	gh     github.Client
	index  IndexService
	policy *models.Policy
	scorer *risk.Scorer
	now    func() time.Time
}

func NewScannerService(ghClient github.Client, index IndexService, p *models.Policy, scorer *risk.Scorer, opts ...ScannerOption) ScannerService {
	s := &scannerService{
		gh:     ghClient,
		index:  index,
		policy: p,
		scorer: scorer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// finding is the outcome of evaluating one required file before routing.
type finding struct {
	action models.QueueAction
	reason models.QueueReason
	meta   *models.SvMeta
}

func (s *scannerService) Scan(ctx context.Context, repo models.Repository) (*models.ScanReport, error) {
	ref, err := s.gh.GetDefaultBranch(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("resolving default branch: %w", err)
	}

	var idx *models.FileIndex
	if s.policy.Scan.IndexFirst {
		idx, err = s.index.Read(ctx, repo, ref)
		if err != nil {
			return nil, fmt.Errorf("reading file index: %w", err)
		}
	}

	report := &models.ScanReport{
		Repo:           repo.FullName,
		Ref:            ref,
		ScannedAt:      s.now().UTC(),
		StructureQueue: []models.QueueItem{},
		LogicQueue:     []models.QueueItem{},
		Notes:          []string{},
		IndexPresent:   idx != nil,
	}
	if s.policy.Scan.IndexFirst && idx == nil {
		report.Notes = append(report.Notes, "no valid file index, using tree reads")
	}

	for _, file := range s.policy.RequiredFiles {
		f, err := s.evaluate(ctx, repo, ref, idx, file)
		if err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}
		s.route(report, file, *f)
	}

	log.Debug().
		Str("repo", repo.FullName).
		Str("ref", ref).
		Bool("index", report.IndexPresent).
		Int("structure", len(report.StructureQueue)).
		Int("logic", len(report.LogicQueue)).
		Msg("repository scanned")

	return report, nil
}

// evaluate returns nil when the file is present and current.
func (s *scannerService) evaluate(ctx context.Context, repo models.Repository, ref string, idx *models.FileIndex, file models.RequiredFile) (*finding, error) {
	minVersion := policy.WantedVersion(s.policy, file)

	if entry, ok := idx.Lookup(file.Path); ok {
		meta := entry.Meta()
		if !Evaluate(s.policy.PolicyEpoch, minVersion, meta, true).NeedsRepair() {
			return nil, nil
		}
		return &finding{action: models.QueueActionReplace, reason: models.ReasonStaleIndex, meta: &meta}, nil
	}

	text, exists, err := s.gh.GetFile(ctx, repo.Owner, repo.Name, file.Path, ref)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file.Path, err)
	}
	if !exists {
		return &finding{action: models.QueueActionAdd, reason: models.ReasonMissingRequired}, nil
	}

	meta, versioned := svmeta.Parse(text)
	if !Evaluate(s.policy.PolicyEpoch, minVersion, meta, versioned).NeedsRepair() {
		return nil, nil
	}
	f := &finding{action: models.QueueActionReplace, reason: models.ReasonStaleTree}
	if versioned {
		f.meta = &meta
	}
	return f, nil
}

// route places the item by path alone. Items outside the structural
// allowlist become triage items in the logic queue.
func (s *scannerService) route(report *models.ScanReport, file models.RequiredFile, f finding) {
	item := models.QueueItem{
		Path:             file.Path,
		Action:           f.action,
		Reason:           f.reason,
		WantedEpoch:      s.policy.PolicyEpoch,
		WantedVersion:    policy.WantedVersion(s.policy, file),
		FoundMetadata:    f.meta,
		DependsOnSecrets: append([]string{}, file.DependsOnSecrets...),
		RiskScore:        s.score(),
	}

	if policy.IsStructural(s.policy, file.Path) {
		report.StructureQueue = append(report.StructureQueue, item)
		return
	}
	item.ProposedAction = item.Action
	item.Action = models.QueueActionTriage
	report.LogicQueue = append(report.LogicQueue, item)
}

// score treats every emitted item as fully stale. Usage and failure
// signals are not collected by the scanner.
func (s *scannerService) score() float64 {
	in := risk.NewInputs()
	in.FreshnessRisk = 1.0
	return s.scorer.Score(in)
}
