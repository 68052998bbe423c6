package policy

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

// MatchAny reports whether name matches any of the patterns with fnmatch
// semantics: "*" and "?" also match "/", so "*.md" matches
// "docs/CONTRIBUTING.md" and "*archive*" matches "StegVerse/old-archive".
// Invalid patterns never match.
func MatchAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(name) {
			return true
		}
	}
	return false
}

// MatchTree reports whether the repository path matches any of the
// path-aware patterns, where "*" stays within one directory and "**"
// crosses them.
func MatchTree(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if doublestar.MatchUnvalidated(pattern, path) {
			return true
		}
	}
	return false
}

// IsStructural reports whether path is safe to fix automatically.
func IsStructural(p *models.Policy, path string) bool {
	return MatchAny(path, p.StructureAllowlistGlobs)
}

// IsExcluded reports whether the repository full name is skipped.
func IsExcluded(p *models.Policy, fullName string) bool {
	return MatchAny(fullName, p.ExcludeRepoGlobs)
}

// WantedVersion is the minimum version for the category of f.
func WantedVersion(p *models.Policy, f models.RequiredFile) string {
	if v, ok := p.MinVersions[f.Category()]; ok && v != "" {
		return v
	}
	return models.DefaultVersion
}
