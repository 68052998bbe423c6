package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"path"
	"regexp"
	"strings"
	"text/template"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/rs/zerolog/log"
	"github.com/tracker-tv/github-hygiene-bot/internal/github"
	"github.com/tracker-tv/github-hygiene-bot/internal/policy"
	"github.com/tracker-tv/github-hygiene-bot/internal/svmeta"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

const BranchPrefix = "scw/autopatch/"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// RemediationService applies pending structural fix-queue entries by
// opening a pull request per file.
type RemediationService interface {
	Remediate(ctx context.Context, entry models.FixQueueEntry) (*models.RemediationResult, error)
}

type RemediationOption func(*remediationService)

func WithDryRun(dryRun bool) RemediationOption {
	return func(s *remediationService) {
		s.dryRun = dryRun
	}
}

func WithRemediationClock(now func() time.Time) RemediationOption {
	return func(s *remediationService) {
		s.now = now
	}
}

type remediationService struct {
	gh     github.Client
	policy *models.Policy
	dryRun bool
	now    func() time.Time
}

func NewRemediationService(ghClient github.Client, p *models.Policy, opts ...RemediationOption) RemediationService {
	s := &remediationService{
		gh:     ghClient,
		policy: p,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Remediate never returns an error for a failed attempt on a valid entry;
// the failure is recorded as still_broken on the result. Errors are
// reserved for entries that cannot be attempted at all.
func (s *remediationService) Remediate(ctx context.Context, entry models.FixQueueEntry) (*models.RemediationResult, error) {
	if entry.Status != models.FixStatusPending {
		return &models.RemediationResult{Entry: entry, Outcome: models.OutcomeSkipped}, nil
	}
	if entry.Action != models.QueueActionAdd && entry.Action != models.QueueActionReplace {
		return nil, fmt.Errorf("entry %s:%s has action %q", entry.Repo, entry.Path, entry.Action)
	}
	owner, name, ok := models.SplitFullName(entry.Repo)
	if !ok {
		return nil, fmt.Errorf("invalid repository name %q", entry.Repo)
	}

	branch := BranchPrefix + Slug(entry.Path)
	result := &models.RemediationResult{Entry: entry, Branch: branch}

	outcome, prURL, err := s.apply(ctx, owner, name, branch, entry)
	if s.dryRun {
		result.Outcome = models.OutcomeDryRun
		if err != nil {
			result.Outcome = models.OutcomeFailed
			result.Error = err.Error()
		}
		return result, nil
	}

	attempted := s.now().UTC()
	result.Entry.LastAttemptUTC = &attempted
	if err != nil {
		log.Warn().Err(err).Str("repo", entry.Repo).Str("path", entry.Path).Msg("autopatch failed")
		result.Outcome = models.OutcomeFailed
		result.Error = err.Error()
		result.Entry.Status = models.FixStatusStillBroken
		return result, nil
	}

	result.Outcome = outcome
	result.PRURL = prURL
	result.Entry.PRURL = prURL
	result.Entry.Status = models.FixStatusFixed
	log.Info().
		Str("repo", entry.Repo).
		Str("path", entry.Path).
		Str("outcome", string(outcome)).
		Str("pr", prURL).
		Msg("autopatch applied")
	return result, nil
}

func (s *remediationService) apply(ctx context.Context, owner, name, branch string, entry models.FixQueueEntry) (models.RemediationOutcome, string, error) {
	base, err := s.gh.GetDefaultBranch(ctx, owner, name)
	if err != nil {
		return "", "", fmt.Errorf("resolving default branch: %w", err)
	}

	content, err := s.render(ctx, owner, name, base, entry)
	if err != nil {
		return "", "", err
	}
	if s.dryRun {
		log.Info().Str("repo", entry.Repo).Str("path", entry.Path).Str("branch", branch).Msg("dry run, not pushing")
		return models.OutcomeDryRun, "", nil
	}

	existingPR, err := s.gh.FindPullRequestByBranch(ctx, owner, name, branch)
	if err != nil {
		return "", "", fmt.Errorf("finding existing PR: %w", err)
	}
	if existingPR != nil {
		return s.updateExistingPR(ctx, owner, name, branch, content, entry, existingPR)
	}
	return s.createNewPR(ctx, owner, name, base, branch, content, entry)
}

// render produces the full file content for entry, metadata block included.
func (s *remediationService) render(ctx context.Context, owner, name, base string, entry models.FixQueueEntry) (string, error) {
	meta := models.NewSvMeta()
	meta.File = entry.Path
	meta.Kind = kindFor(entry.Path)
	meta.Module = name
	meta.Version = entry.WantedVersion
	meta.Epoch = entry.WantedEpoch
	meta.BuildID = s.now().UTC().Format("20060102-150405Z")
	meta.Sig = models.SvMetaSig
	style := svmeta.StyleFor(entry.Path)

	if entry.Action == models.QueueActionReplace {
		current, found, err := s.gh.GetFile(ctx, owner, name, entry.Path, base)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", entry.Path, err)
		}
		if found {
			if previous, ok := svmeta.Parse(current); ok {
				meta.ParentBuild = previous.BuildID
			}
			meta.Hash = svmeta.ContentHash(current)
			return svmeta.Restamp(current, meta, style), nil
		}
	}

	body, err := s.template(owner, name, base, entry.Path)
	if err != nil {
		return "", err
	}
	meta.Hash = svmeta.ContentHash(body)
	return svmeta.Stamp(meta, style) + body, nil
}

func (s *remediationService) template(owner, name, base, filePath string) (string, error) {
	tmplName := templateFor(filePath)
	for _, f := range s.policy.RequiredFiles {
		if f.Path == filePath && f.Template != "" {
			tmplName = f.Template
		}
	}
	if templates.Lookup(tmplName) == nil {
		return "", fmt.Errorf("unknown template %q for %s", tmplName, filePath)
	}

	data := struct {
		Owner, Repo, Branch, Path, Name string
	}{
		Owner:  owner,
		Repo:   name,
		Branch: base,
		Path:   filePath,
		Name:   strings.TrimSuffix(path.Base(filePath), path.Ext(filePath)),
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", tmplName, err)
	}
	return buf.String(), nil
}

func (s *remediationService) updateExistingPR(ctx context.Context, owner, name, branch, content string, entry models.FixQueueEntry, pr *gh.PullRequest) (models.RemediationOutcome, string, error) {
	current, fileSHA, err := s.gh.GetFileContent(ctx, owner, name, entry.Path, branch)
	if err != nil {
		current = ""
		fileSHA = ""
	}
	if sameIgnoringBuild(current, content) {
		return models.OutcomeSkipped, pr.GetHTMLURL(), nil
	}

	var sha *string
	if fileSHA != "" {
		sha = &fileSHA
	}
	if err := s.gh.CreateOrUpdateFile(ctx, owner, name, entry.Path, branch, commitMessage(entry), content, sha); err != nil {
		return "", "", fmt.Errorf("updating file: %w", err)
	}
	return models.OutcomeUpdated, pr.GetHTMLURL(), nil
}

func (s *remediationService) createNewPR(ctx context.Context, owner, name, base, branch, content string, entry models.FixQueueEntry) (models.RemediationOutcome, string, error) {
	baseRef, err := s.gh.GetBranch(ctx, owner, name, base)
	if err != nil {
		return "", "", fmt.Errorf("getting branch %s: %w", base, err)
	}
	baseSHA := baseRef.GetObject().GetSHA()
	if baseSHA == "" {
		return "", "", fmt.Errorf("default branch SHA is empty for %s/%s", owner, name)
	}

	if err := s.gh.CreateBranch(ctx, owner, name, branch, baseSHA); err != nil {
		// A leftover branch from an earlier run is reused.
		if _, getErr := s.gh.GetBranch(ctx, owner, name, branch); getErr != nil {
			return "", "", fmt.Errorf("creating branch %s: %w", branch, err)
		}
	}

	var fileSHA *string
	if entry.Action == models.QueueActionReplace {
		if _, sha, err := s.gh.GetFileContent(ctx, owner, name, entry.Path, branch); err == nil {
			fileSHA = &sha
		}
	}
	if err := s.gh.CreateOrUpdateFile(ctx, owner, name, entry.Path, branch, commitMessage(entry), content, fileSHA); err != nil {
		return "", "", fmt.Errorf("writing %s on branch %s: %w", entry.Path, branch, err)
	}

	pr, err := s.gh.CreatePullRequest(ctx, owner, name, commitMessage(entry), prBody(entry), branch, base)
	if err != nil {
		return "", "", fmt.Errorf("creating PR: %w", err)
	}
	return models.OutcomeCreated, pr.GetHTMLURL(), nil
}

func commitMessage(entry models.FixQueueEntry) string {
	verb := "add"
	if entry.Action == models.QueueActionReplace {
		verb = "refresh"
	}
	return fmt.Sprintf("chore(scw): %s %s", verb, entry.Path)
}

func prBody(entry models.FixQueueEntry) string {
	var b strings.Builder
	b.WriteString("## Hygiene Bot Automated PR\n\n")
	fmt.Fprintf(&b, "**File:** `%s`\n", entry.Path)
	fmt.Fprintf(&b, "**Action:** %s\n", entry.Action)
	fmt.Fprintf(&b, "**Reason:** %s\n", entry.Reason)
	fmt.Fprintf(&b, "**Wanted:** epoch %d, version %s\n", entry.WantedEpoch, entry.WantedVersion)
	fmt.Fprintf(&b, "**Risk score:** %.2f\n", entry.RiskScore)
	if len(entry.DependsOnSecrets) > 0 {
		fmt.Fprintf(&b, "\nThis file depends on secrets: `%s`. Make sure they are configured before merging.\n", strings.Join(entry.DependsOnSecrets, "`, `"))
	}
	b.WriteString("\n---\n*This is an automated PR. Please review before merging.*\n")
	return b.String()
}

var buildIDLine = regexp.MustCompile(`(?m)^.*sv_build_id:.*$`)

// sameIgnoringBuild compares two renderings without their build ids, which
// change on every run.
func sameIgnoringBuild(a, b string) bool {
	return buildIDLine.ReplaceAllString(a, "") == buildIDLine.ReplaceAllString(b, "")
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a file path into a branch-safe name: ".github/workflows/ci.yml"
// becomes "github-workflows-ci-yml".
func Slug(p string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(p), "-"), "-")
}

func templateFor(p string) string {
	switch {
	case strings.EqualFold(path.Base(p), "README.md"):
		return "readme.md.tmpl"
	case strings.EqualFold(path.Base(p), "SECURITY.md"):
		return "security.md.tmpl"
	case policy.MatchTree(p, []string{".github/workflows/*.yml", ".github/workflows/*.yaml"}):
		return "workflow.yml.tmpl"
	default:
		return "placeholder.tmpl"
	}
}

func kindFor(p string) string {
	switch {
	case strings.HasPrefix(p, ".github/workflows/"):
		return "workflow"
	case svmeta.StyleFor(p) == svmeta.StyleMarkdown:
		return "doc"
	default:
		return "file"
	}
}
