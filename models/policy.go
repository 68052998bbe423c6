package models

// DefaultVersionCategory is the min_versions key used when a required file
// does not name its own category.
const DefaultVersionCategory = "workflow"

type Policy struct {
	PolicyEpoch             int               `yaml:"policy_epoch" json:"policy_epoch"`
	RequiredFiles           []RequiredFile    `yaml:"required_files" json:"required_files"`
	MinVersions             map[string]string `yaml:"min_versions" json:"min_versions"`
	StructureAllowlistGlobs []string          `yaml:"structure_allowlist_globs" json:"structure_allowlist_globs"`
	ExcludeRepoGlobs        []string          `yaml:"exclude_repos_globs" json:"exclude_repos_globs"`
	Scan                    ScanOptions       `yaml:"scan" json:"scan"`
}

type RequiredFile struct {
	Path             string   `yaml:"path" json:"path"`
	DependsOnSecrets []string `yaml:"depends_on_secrets" json:"depends_on_secrets"`
	VersionCategory  string   `yaml:"version_category,omitempty" json:"version_category,omitempty"`
	Template         string   `yaml:"template,omitempty" json:"template,omitempty"`
}

type ScanOptions struct {
	IndexFirst   bool     `yaml:"index_first" json:"index_first"`
	IndexPath    string   `yaml:"index_path,omitempty" json:"index_path,omitempty"`
	IndexGlobs   []string `yaml:"index_globs,omitempty" json:"index_globs,omitempty"`
	SkipArchived bool     `yaml:"skip_archived,omitempty" json:"skip_archived,omitempty"`
}

// Category returns the version category of the file, falling back to
// DefaultVersionCategory.
func (f RequiredFile) Category() string {
	if f.VersionCategory == "" {
		return DefaultVersionCategory
	}
	return f.VersionCategory
}
