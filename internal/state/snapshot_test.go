package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

func TestLatest(t *testing.T) {
	events := []models.Event{
		{TS: "2026-01-01T00:00:00Z", Namespace: "SCW", Kind: KindFirstAid, ResourceName: "ci.yml", Status: "still_broken"},
		{TS: "2026-01-03T00:00:00Z", Namespace: "SCW", Kind: KindFirstAid, ResourceName: "ci.yml", Status: "fixed"},
		{TS: "2026-01-02T00:00:00Z", Namespace: "SCW", Kind: KindFirstAid, ResourceName: "ci.yml", Status: "still_broken"},
		{TS: "2026-01-03T00:00:00Z", Namespace: "SCW", Kind: KindFirstAid, ResourceName: "ci.yml", Status: "other"},
		{TS: "2026-01-05T00:00:00Z", Namespace: "OTHER", Kind: KindFirstAid, ResourceName: "ci.yml", Status: "still_broken"},
		{TS: "2026-01-05T00:00:00Z", Namespace: "SCW", Kind: KindFixQueue, ResourceName: "ci.yml", Status: "pending"},
		{TS: "2026-01-05T00:00:00Z", Namespace: "SCW", Kind: KindFirstAid, Status: "fixed"},
	}

	latest := Latest(events, models.EventNamespaceSCW, KindFirstAid)

	assert.Len(t, latest, 1)
	assert.Equal(t, "fixed", latest["ci.yml"].Status)

	all := Latest(events, models.EventNamespaceSCW)
	assert.Equal(t, "pending", all["ci.yml"].Status)
}

func TestRenderMarkdown_Empty(t *testing.T) {
	md := RenderMarkdown(map[string]models.Event{}, ts, ".steg/state/events.jsonl")

	assert.True(t, strings.HasPrefix(md, "# StegVerse State Snapshot (SCW)\n"))
	assert.Contains(t, md, "_Generated: **2026-02-03T04:05:06Z**_")
	assert.Contains(t, md, "- Total tracked resources: **0**")
	assert.Contains(t, md, "> No SCW events recorded yet in `.steg/state/events.jsonl`.")
	assert.NotContains(t, md, "| Resource |")
}

func TestRenderMarkdown(t *testing.T) {
	sum := "abc123"
	latest := map[string]models.Event{
		"b.yml": {TS: "2026-01-02T00:00:00Z", ResourceName: "b.yml", Status: "still_broken", ErrorType: "YAMLError", Labels: []string{"first_aid", "broken"}},
		"a.yml": {TS: "2026-01-01T00:00:00Z", ResourceName: "a.yml", Status: "fixed", PostChecksum: &sum, Labels: []string{"first_aid"}, Meta: map[string]any{"run_id": "42"}},
		"c.yml": {TS: "2026-01-01T00:00:00Z", ResourceName: "c.yml", Status: "dispatch_added_only"},
		"d":     {TS: "2026-01-01T00:00:00Z", ResourceName: "d", Status: "pending"},
		"e":     {TS: "2026-01-01T00:00:00Z", ResourceName: "e", Status: "triage"},
		"f":     {TS: "2026-01-01T00:00:00Z", ResourceName: "f"},
	}

	md := RenderMarkdown(latest, ts, "events.jsonl")

	assert.Contains(t, md, "- ✅ Fixed: **1**")
	assert.Contains(t, md, "- ❌ Still broken: **1**")
	assert.Contains(t, md, "- ⚪ Dispatch-only entries: **1**")
	assert.Contains(t, md, "- 🟡 Pending autopatch: **1**")
	assert.Contains(t, md, "- 🔍 Awaiting triage: **1**")
	assert.Contains(t, md, "- ℹ️ Other states: **1**")
	assert.Contains(t, md, "- Total tracked resources: **6**")
	assert.Contains(t, md, "| `a.yml` | ✅ fixed | `abc123` | first_aid | `42` | `2026-01-01T00:00:00Z` |")
	assert.Contains(t, md, "| `b.yml` | ❌ still_broken · `YAMLError` | `` | first_aid, broken | `` | `2026-01-02T00:00:00Z` |")
	assert.Contains(t, md, "ℹ️ unknown")
	assert.Less(t, strings.Index(md, "`a.yml`"), strings.Index(md, "`b.yml`"))
	assert.Contains(t, md, "> Source: `events.jsonl`")
}
