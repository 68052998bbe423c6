package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tracker-tv/github-hygiene-bot/internal/github"
	"github.com/tracker-tv/github-hygiene-bot/internal/policy"
	"github.com/tracker-tv/github-hygiene-bot/internal/risk"
	"github.com/tracker-tv/github-hygiene-bot/internal/service"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

// app holds the services shared by the GitHub-backed commands.
type app struct {
	policy  *models.Policy
	gh      github.Client
	repos   service.RepositoryService
	index   service.IndexService
	scanner service.ScannerService
}

func loadPolicy() (*models.Policy, error) {
	if cfg.PolicyPath != "" {
		return policy.FromFile(cfg.PolicyPath)
	}
	if len(defaultPolicy) == 0 {
		return nil, fmt.Errorf("no policy configured")
	}
	return policy.FromYAML(defaultPolicy)
}

func newApp() (*app, error) {
	p, err := loadPolicy()
	if err != nil {
		return nil, err
	}
	token, err := cfg.Token()
	if err != nil {
		return nil, err
	}

	gh := github.New(token, github.Options{MaxPages: cfg.MaxRepoPages})
	index := service.NewIndexService(gh, p)

	return &app{
		policy:  p,
		gh:      gh,
		repos:   service.NewRepositoriesService(gh),
		index:   index,
		scanner: service.NewScannerService(gh, index, p, risk.NewScorer(cfg.Risk)),
	}, nil
}

func parseRepo(fullName string) (models.Repository, error) {
	owner, name, ok := models.SplitFullName(fullName)
	if !ok {
		return models.Repository{}, fmt.Errorf("repository must be owner/name, got %q", fullName)
	}
	return models.Repository{Name: name, FullName: fullName, Owner: owner}, nil
}

// writeJSON writes v indented to path through a temporary file so readers
// never observe a partial document.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}

func readReport(path string) (*models.OrgReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var report models.OrgReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", path, err)
	}
	if report.Sig != models.OrgScanSig {
		return nil, fmt.Errorf("report %s has signature %q, want %q", path, report.Sig, models.OrgScanSig)
	}
	return &report, nil
}
