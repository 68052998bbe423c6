package policy

import (
	"fmt"
	"os"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
	"github.com/tracker-tv/github-hygiene-bot/models"
	"gopkg.in/yaml.v3"
)

var versionRe = regexp.MustCompile(`^\d+(\.\d+){0,2}$`)

// document mirrors the YAML layout with pointers so absent keys can be told
// apart from zero values.
type document struct {
	PolicyEpoch             *int               `yaml:"policy_epoch"`
	RequiredFiles           *[]requiredFileDoc `yaml:"required_files"`
	MinVersions             *map[string]string `yaml:"min_versions"`
	StructureAllowlistGlobs *[]string          `yaml:"structure_allowlist_globs"`
	ExcludeRepoGlobs        *[]string          `yaml:"exclude_repos_globs"`
	Scan                    *scanDoc           `yaml:"scan"`
}

type requiredFileDoc struct {
	Path             string   `yaml:"path"`
	DependsOnSecrets []string `yaml:"depends_on_secrets"`
	VersionCategory  string   `yaml:"version_category"`
	Template         string   `yaml:"template"`
}

type scanDoc struct {
	IndexFirst   *bool    `yaml:"index_first"`
	IndexPath    string   `yaml:"index_path"`
	IndexGlobs   []string `yaml:"index_globs"`
	SkipArchived bool     `yaml:"skip_archived"`
}

func FromYAML(data []byte) (*models.Policy, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Field: "document", Reason: err.Error()}
	}

	if err := doc.requireKeys(); err != nil {
		return nil, err
	}

	p := &models.Policy{
		PolicyEpoch:             *doc.PolicyEpoch,
		MinVersions:             *doc.MinVersions,
		StructureAllowlistGlobs: *doc.StructureAllowlistGlobs,
		ExcludeRepoGlobs:        *doc.ExcludeRepoGlobs,
		Scan: models.ScanOptions{
			IndexFirst:   *doc.Scan.IndexFirst,
			IndexPath:    doc.Scan.IndexPath,
			IndexGlobs:   doc.Scan.IndexGlobs,
			SkipArchived: doc.Scan.SkipArchived,
		},
	}
	if p.MinVersions == nil {
		p.MinVersions = map[string]string{}
	}
	if p.Scan.IndexPath == "" {
		p.Scan.IndexPath = models.DefaultIndexPath
	}
	for _, f := range *doc.RequiredFiles {
		p.RequiredFiles = append(p.RequiredFiles, models.RequiredFile{
			Path:             f.Path,
			DependsOnSecrets: f.DependsOnSecrets,
			VersionCategory:  f.VersionCategory,
			Template:         f.Template,
		})
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func FromFile(path string) (*models.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy %s: %w", path, err)
	}
	return FromYAML(data)
}

func (d *document) requireKeys() error {
	switch {
	case d.PolicyEpoch == nil:
		return missing("policy_epoch")
	case d.RequiredFiles == nil:
		return missing("required_files")
	case d.MinVersions == nil:
		return missing("min_versions")
	case d.StructureAllowlistGlobs == nil:
		return missing("structure_allowlist_globs")
	case d.ExcludeRepoGlobs == nil:
		return missing("exclude_repos_globs")
	case d.Scan == nil:
		return missing("scan")
	case d.Scan.IndexFirst == nil:
		return missing("scan.index_first")
	}
	return nil
}

func missing(field string) error {
	return &ConfigError{Field: field, Reason: "required key is missing"}
}

// Validate checks the invariants of an already decoded policy.
func Validate(p *models.Policy) error {
	if p.PolicyEpoch < 0 {
		return &ConfigError{Field: "policy_epoch", Reason: fmt.Sprintf("must not be negative, got %d", p.PolicyEpoch)}
	}

	seen := make(map[string]bool, len(p.RequiredFiles))
	for i, f := range p.RequiredFiles {
		if f.Path == "" {
			return &ConfigError{Field: fmt.Sprintf("required_files[%d].path", i), Reason: "must not be empty"}
		}
		if seen[f.Path] {
			return &ConfigError{Field: fmt.Sprintf("required_files[%d].path", i), Reason: fmt.Sprintf("duplicate path %q", f.Path)}
		}
		seen[f.Path] = true
	}

	for category, v := range p.MinVersions {
		if !versionRe.MatchString(v) {
			return &ConfigError{Field: "min_versions." + category, Reason: fmt.Sprintf("%q is not a semantic version", v)}
		}
	}

	names := map[string][]string{
		"structure_allowlist_globs": p.StructureAllowlistGlobs,
		"exclude_repos_globs":       p.ExcludeRepoGlobs,
	}
	for field, patterns := range names {
		for _, pattern := range patterns {
			if _, err := glob.Compile(pattern); err != nil {
				return &ConfigError{Field: field, Reason: fmt.Sprintf("invalid glob %q: %v", pattern, err)}
			}
		}
	}
	for _, pattern := range p.Scan.IndexGlobs {
		if !doublestar.ValidatePattern(pattern) {
			return &ConfigError{Field: "scan.index_globs", Reason: fmt.Sprintf("invalid glob %q", pattern)}
		}
	}

	return nil
}
