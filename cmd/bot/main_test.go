package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracker-tv/github-hygiene-bot/internal/policy"
)

func TestDefaultPolicyIsValid(t *testing.T) {
	p, err := policy.FromYAML(defaultPolicy)

	require.NoError(t, err)
	assert.Equal(t, 9, p.PolicyEpoch)
	assert.True(t, p.Scan.IndexFirst)
	for _, f := range p.RequiredFiles {
		_, ok := p.MinVersions[f.Category()]
		assert.True(t, ok, "no min version for %s (%s)", f.Path, f.Category())
	}
	assert.True(t, policy.IsStructural(p, "README.md"))
	assert.False(t, policy.IsStructural(p, "scw/scw_core.py"))
	assert.True(t, policy.IsExcluded(p, "StegVerse/.github"))
}
