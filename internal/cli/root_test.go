package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracker-tv/github-hygiene-bot/internal/config"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommandHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"org-scan", "self-test", "autopatch", "index", "state", "version"} {
		assert.True(t, names[want], "root command missing subcommand %q", want)
	}
}

func TestVersionOutput(t *testing.T) {
	// version vars are set via ldflags; in tests they have their defaults
	assert.Equal(t, "dev", version)

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "scw dev (commit none, built unknown)\n", out)
}

func TestNeedsGitHub(t *testing.T) {
	assert.True(t, needsGitHub(orgScanCmd))
	assert.True(t, needsGitHub(selfTestCmd))
	assert.True(t, needsGitHub(autopatchCmd))
	assert.True(t, needsGitHub(indexBuildCmd))
	assert.False(t, needsGitHub(stateSnapshotCmd))
	assert.False(t, needsGitHub(versionCmd))
}

func TestMissingTokenFailsBeforeAnyCall(t *testing.T) {
	t.Setenv("GH_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	_, err := execute(t, "org-scan", "--orgs", "StegVerse")

	assert.ErrorIs(t, err, config.ErrMissingToken)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "version", "--log-level", "chatty")

	assert.Error(t, err)
	_, err = execute(t, "version", "--log-level", "info")
	assert.NoError(t, err)
}

func TestStateCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GITHUB_WORKSPACE", dir)
	t.Setenv("GITHUB_RUN_ID", "314")

	summary := filepath.Join(dir, "FIRST_AID_SUMMARY.json")
	require.NoError(t, os.WriteFile(summary, []byte(`{"fixed":["ci.yml"],"still_broken":[["deploy.yml","YAMLError"]]}`), 0o644))

	_, err := execute(t, "state", "first-aid", "--summary-path", summary)
	require.NoError(t, err)

	output := filepath.Join(dir, "docs", "STATE_SNAPSHOT.md")
	out, err := execute(t, "state", "snapshot", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, output)

	md, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(md), "| `ci.yml` | ✅ fixed |")
	assert.Contains(t, string(md), "❌ still_broken · `YAMLError`")
	assert.Contains(t, string(md), "`314`")
}

func TestWriteAndReadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "org_scan.json")
	report := models.NewOrgReport(9, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	report.FixQueue.Items = append(report.FixQueue.Items, models.FixQueueEntry{Repo: "StegVerse/api", Path: "README.md", Status: models.FixStatusPending})

	require.NoError(t, writeJSON(path, report))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), "}\n"))
	assert.Contains(t, string(raw), `"sig": "orgscan:v4"`)
	assert.Contains(t, string(raw), `"last_attempt_utc": null`)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	got, err := readReport(path)
	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestReadReport_WrongSignature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sig":"orgscan:v3"}`), 0o644))

	_, err := readReport(path)

	assert.ErrorContains(t, err, "orgscan:v3")
}

func TestParseRepo(t *testing.T) {
	repo, err := parseRepo("StegVerse/api")
	require.NoError(t, err)
	assert.Equal(t, models.Repository{Name: "api", FullName: "StegVerse/api", Owner: "StegVerse"}, repo)

	_, err = parseRepo("api")
	assert.Error(t, err)
}
