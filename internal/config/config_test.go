package config

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracker-tv/github-hygiene-bot/internal/risk"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{}})

	require.NoError(t, err)
	assert.Equal(t, []string{"StegVerse", "StegVerse-Labs"}, cfg.Orgs)
	assert.Empty(t, cfg.PolicyPath)
	assert.Equal(t, "reports/org_scan.json", cfg.ReportPath)
	assert.Equal(t, ".steg/state", cfg.StateDir)
	assert.False(t, cfg.FailFast)
	assert.Equal(t, 10, cfg.MaxRepoPages)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ".", cfg.Workspace)
	assert.Equal(t, risk.DefaultWeights(), cfg.Risk)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{
		"SCW_ORGS":                   " StegVerse , ,Labs",
		"SCW_FAIL_FAST":              "true",
		"SCW_MAX_REPO_PAGES":         "3",
		"SCW_RISK_STALE_WEIGHT":      "2.5",
		"SCW_RISK_HIGH_USAGE_WEIGHT": "0",
		"GITHUB_REPOSITORY":          "StegVerse/scw",
		"GITHUB_RUN_ID":              "99",
	}})

	require.NoError(t, err)
	assert.Equal(t, []string{"StegVerse", "Labs"}, cfg.Orgs)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, 3, cfg.MaxRepoPages)
	assert.Equal(t, 2.5, cfg.Risk.Freshness)
	assert.Equal(t, 0.0, cfg.Risk.Usage)
	assert.Equal(t, 1.3, cfg.Risk.FailAdjacent)
	assert.Equal(t, "StegVerse/scw", cfg.Run.Repo)
	assert.Equal(t, "99", cfg.Run.RunID)
}

func TestParse_Invalid(t *testing.T) {
	_, err := parse(env.Options{Environment: map[string]string{"SCW_MAX_REPO_PAGES": "many"}})

	assert.Error(t, err)
}

func TestParse_NegativeRiskWeight(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{
		"SCW_RISK_FAILURE_ADJACENT_WEIGHT": "-0.5",
	}})

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "failure adjacent")
}

func TestToken(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr error
	}{
		{name: "gh token wins", cfg: Config{GHToken: "gh", GithubToken: "github"}, want: "gh"},
		{name: "github token fallback", cfg: Config{GHToken: "  ", GithubToken: "github"}, want: "github"},
		{name: "missing", cfg: Config{}, wantErr: ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Token()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("GH_TOKEN", "secret")
	t.Setenv("SCW_ORGS", "OnlyOne")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"OnlyOne"}, cfg.Orgs)
	token, err := cfg.Token()
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}
