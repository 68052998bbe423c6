package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

func TestMatchAny(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		patterns []string
		want     bool
	}{
		{"root markdown", "README.md", []string{"*.md"}, true},
		{"star crosses directories", "docs/CONTRIBUTING.md", []string{"*.md"}, true},
		{"directory prefix covers nested files", ".github/workflows/ci.yml", []string{".github/*"}, true},
		{"workflow dir", ".github/workflows/ci.yml", []string{".github/workflows/*.yml"}, true},
		{"question mark", "SECURITY.md", []string{"SECURIT?.md"}, true},
		{"character class", "StegVerse/core-2", []string{"StegVerse/core-[0-9]"}, true},
		{"negated class", "StegVerse/core-x", []string{"StegVerse/core-[!0-9]"}, true},
		{"no patterns", "README.md", nil, false},
		{"exact name only", "docs/README.md", []string{"README.md"}, false},
		{"substring exclusion", "StegVerse/old-archive", []string{"*archive*"}, true},
		{"repo glob", "StegVerse/archive-2023", []string{"StegVerse/archive-*"}, true},
		{"other org", "StegVerse-Labs/archive-2023", []string{"StegVerse/archive-*"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAny(tt.path, tt.patterns))
		})
	}
}

func TestMatchTree(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		patterns []string
		want     bool
	}{
		{"root markdown", "README.md", []string{"*.md"}, true},
		{"single star stays in directory", "docs/README.md", []string{"*.md"}, false},
		{"double star", "docs/guide/README.md", []string{"**/*.md"}, true},
		{"workflow dir", ".github/workflows/ci.yml", []string{".github/workflows/*.yml"}, true},
		{"no patterns", "README.md", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchTree(tt.path, tt.patterns))
		})
	}
}

func TestIsStructuralAndExcluded(t *testing.T) {
	p := &models.Policy{
		StructureAllowlistGlobs: []string{"*.md", ".github/*"},
		ExcludeRepoGlobs:        []string{"*archive*", "*/sandbox-*"},
	}

	assert.True(t, IsStructural(p, "README.md"))
	assert.True(t, IsStructural(p, "docs/CONTRIBUTING.md"))
	assert.True(t, IsStructural(p, ".github/workflows/ci.yml"))
	assert.False(t, IsStructural(p, "scw/scw_core.py"))
	assert.True(t, IsExcluded(p, "StegVerse/old-archive"))
	assert.True(t, IsExcluded(p, "StegVerse/sandbox-1"))
	assert.False(t, IsExcluded(p, "StegVerse/core"))
}

func TestWantedVersion(t *testing.T) {
	p := &models.Policy{MinVersions: map[string]string{"workflow": "4.0.0", "docs": "1.2.0"}}

	assert.Equal(t, "4.0.0", WantedVersion(p, models.RequiredFile{Path: "ci.yml"}))
	assert.Equal(t, "1.2.0", WantedVersion(p, models.RequiredFile{Path: "README.md", VersionCategory: "docs"}))
	assert.Equal(t, models.DefaultVersion, WantedVersion(p, models.RequiredFile{Path: "x", VersionCategory: "unknown"}))
}
