package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

var ts = time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

func TestTimestamp(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	assert.Equal(t, "2026-02-03T04:05:06Z", Timestamp(ts))
	assert.Equal(t, "2026-02-03T03:05:06Z", Timestamp(time.Date(2026, 2, 3, 4, 5, 6, 0, loc)))
}

func TestRunContextMeta(t *testing.T) {
	meta := RunContext{Repo: "StegVerse/scw", RunID: "42"}.Meta()

	assert.Equal(t, "StegVerse/scw", meta["repo"])
	assert.Equal(t, "42", meta["run_id"])
	v, ok := meta["sha"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Len(t, meta, 9)
}

func TestFirstAidSummary_Decode(t *testing.T) {
	raw := `{"fixed":["a.yml"],"added_dispatch":["a.yml","b.yml"],"still_broken":[["c.yml","YAMLError"],"d.yml",["e.yml"],[],null]}`

	var summary FirstAidSummary
	require.NoError(t, json.Unmarshal([]byte(raw), &summary))

	assert.Equal(t, []string{"a.yml"}, summary.Fixed)
	assert.Equal(t, []BrokenWorkflow{
		{Name: "c.yml", ErrorType: "YAMLError"},
		{Name: "d.yml", ErrorType: "UnknownError"},
		{Name: "e.yml", ErrorType: "UnknownError"},
		{},
		{},
	}, summary.StillBroken)
}

func TestLoadFirstAidSummary(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "FIRST_AID_SUMMARY.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"fixed":["ci.yml"]}`), 0o644))

	summary, err := LoadFirstAidSummary(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"ci.yml"}, summary.Fixed)

	_, err = LoadFirstAidSummary(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFromFirstAid(t *testing.T) {
	root := t.TempDir()
	workflows := filepath.Join(root, ".github", "workflows")
	require.NoError(t, os.MkdirAll(workflows, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workflows, "a.yml"), []byte("abc"), 0o644))

	summary := &FirstAidSummary{
		Fixed:         []string{"a.yml", "z.yml"},
		AddedDispatch: []string{"a.yml", "b.yml", "b.yml"},
		StillBroken:   []BrokenWorkflow{{Name: "c.yml", ErrorType: "YAMLError"}, {}},
	}

	events := FromFirstAid(summary, root, ts, RunContext{RunID: "7"})

	require.Len(t, events, 4)

	a := events[0]
	assert.Equal(t, "2026-02-03T04:05:06Z", a.TS)
	assert.Equal(t, models.EventNamespaceSCW, a.Namespace)
	assert.Equal(t, KindFirstAid, a.Kind)
	assert.Equal(t, EventTypeRepair, a.EventType)
	assert.Equal(t, "fixed", a.Status)
	assert.Equal(t, "workflow", a.ResourceType)
	assert.Equal(t, ".github/workflows/a.yml", a.Path)
	assert.Equal(t, []string{"first_aid", "repair", "dispatch_injected"}, a.Labels)
	require.NotNil(t, a.PostChecksum)
	assert.Equal(t, "7", a.Meta["run_id"])

	z := events[1]
	assert.Equal(t, []string{"first_aid", "repair", "no_dispatch_change"}, z.Labels)
	assert.Nil(t, z.PostChecksum)

	b := events[2]
	assert.Equal(t, "b.yml", b.ResourceName)
	assert.Equal(t, StatusDispatchOnly, b.Status)
	assert.Equal(t, []string{"first_aid", "dispatch_only"}, b.Labels)

	c := events[3]
	assert.Equal(t, "still_broken", c.Status)
	assert.Equal(t, "YAMLError", c.ErrorType)
	assert.Equal(t, []string{"first_aid", "broken"}, c.Labels)
}

func TestFromFixQueue(t *testing.T) {
	report := models.NewOrgReport(9, ts)
	report.FixQueue.Items = []models.FixQueueEntry{
		{Repo: "StegVerse/api", Path: "README.md", Action: models.QueueActionAdd, Reason: models.ReasonMissingRequired, Status: models.FixStatusPending, RiskScore: 1.5, WantedEpoch: 9, WantedVersion: "4.0.0"},
		{Repo: "StegVerse/api", Path: "scw/risk.py", Action: models.QueueActionTriage, Reason: models.ReasonStaleTree, Status: models.FixStatusTriage},
	}

	events := FromFixQueue(report, RunContext{})

	require.Len(t, events, 2)
	assert.Equal(t, KindFixQueue, events[0].Kind)
	assert.Equal(t, EventTypeScan, events[0].EventType)
	assert.Equal(t, "pending", events[0].Status)
	assert.Equal(t, "StegVerse/api:README.md", events[0].ResourceName)
	assert.Equal(t, []string{"org_scan", "add", "missing_required"}, events[0].Labels)
	assert.Equal(t, 1.5, events[0].Meta["risk_score"])
	assert.Equal(t, "StegVerse/api", events[0].Meta["target_repo"])
	assert.Equal(t, "triage", events[1].Status)
}

func TestFromRemediation(t *testing.T) {
	results := []models.RemediationResult{
		{
			Entry:   models.FixQueueEntry{Repo: "StegVerse/api", Path: "README.md", Status: models.FixStatusFixed},
			Outcome: models.OutcomeCreated,
			Branch:  "scw/autopatch/readme-md",
			PRURL:   "https://github.com/StegVerse/api/pull/1",
		},
		{
			Entry:   models.FixQueueEntry{Repo: "StegVerse/web", Path: "SECURITY.md", Status: models.FixStatusStillBroken},
			Outcome: models.OutcomeFailed,
			Error:   "creating PR: 422",
		},
		{
			Entry:   models.FixQueueEntry{Repo: "StegVerse/web", Path: "README.md", Status: models.FixStatusPending},
			Outcome: models.OutcomeDryRun,
		},
	}

	events := FromRemediation(results, ts, RunContext{})

	require.Len(t, events, 3)
	assert.Equal(t, "fixed", events[0].Status)
	assert.Equal(t, "https://github.com/StegVerse/api/pull/1", events[0].Meta["pr_url"])
	assert.Empty(t, events[0].ErrorType)
	assert.Equal(t, "still_broken", events[1].Status)
	assert.Equal(t, "RemediationError", events[1].ErrorType)
	assert.Equal(t, "creating PR: 422", events[1].Meta["error"])
	assert.Equal(t, "dry_run", events[2].Status)
	assert.Equal(t, []string{"autopatch", "dry_run"}, events[2].Labels)
}
