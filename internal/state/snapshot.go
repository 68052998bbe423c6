package state

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tracker-tv/github-hygiene-bot/models"
)

const DefaultSnapshotPath = ".github/docs/STATE_SNAPSHOT.md"

// Latest keeps the newest event per resource name among events of the
// namespace whose kind is one of kinds. An empty kinds matches all kinds.
// On equal timestamps the earlier record wins.
func Latest(events []models.Event, namespace string, kinds ...string) map[string]models.Event {
	latest := make(map[string]models.Event)
	for _, ev := range events {
		if ev.Namespace != namespace {
			continue
		}
		if len(kinds) > 0 && !slices.Contains(kinds, ev.Kind) {
			continue
		}
		if ev.ResourceName == "" {
			continue
		}
		if prev, ok := latest[ev.ResourceName]; ok && ev.TS <= prev.TS {
			continue
		}
		latest[ev.ResourceName] = ev
	}
	return latest
}

type bucket int

const (
	bucketFixed bucket = iota
	bucketBroken
	bucketDispatchOnly
	bucketPending
	bucketTriage
	bucketOther
)

func bucketOf(ev models.Event) bucket {
	switch ev.Status {
	case string(models.FixStatusFixed):
		return bucketFixed
	case string(models.FixStatusStillBroken):
		return bucketBroken
	case StatusDispatchOnly:
		return bucketDispatchOnly
	case string(models.FixStatusPending):
		return bucketPending
	case string(models.FixStatusTriage):
		return bucketTriage
	default:
		return bucketOther
	}
}

func statusLabel(ev models.Event) string {
	switch bucketOf(ev) {
	case bucketFixed:
		return "✅ fixed"
	case bucketDispatchOnly:
		return "⚪ dispatch-only"
	case bucketBroken:
		if ev.ErrorType != "" {
			return fmt.Sprintf("❌ still_broken · `%s`", ev.ErrorType)
		}
		return "❌ still_broken"
	case bucketPending:
		return "🟡 pending"
	case bucketTriage:
		return "🔍 triage"
	}
	status := ev.Status
	if status == "" {
		status = "unknown"
	}
	return "ℹ️ " + status
}

// RenderMarkdown renders the snapshot document for latest. source names the
// event log in the footer.
func RenderMarkdown(latest map[string]models.Event, now time.Time, source string) string {
	var counts [bucketOther + 1]int
	for _, ev := range latest {
		counts[bucketOf(ev)]++
	}

	var b strings.Builder
	b.WriteString("# StegVerse State Snapshot (SCW)\n\n")
	fmt.Fprintf(&b, "_Generated: **%s**_\n\n", Timestamp(now))
	fmt.Fprintf(&b, "- ✅ Fixed: **%d**\n", counts[bucketFixed])
	fmt.Fprintf(&b, "- ❌ Still broken: **%d**\n", counts[bucketBroken])
	fmt.Fprintf(&b, "- ⚪ Dispatch-only entries: **%d**\n", counts[bucketDispatchOnly])
	fmt.Fprintf(&b, "- 🟡 Pending autopatch: **%d**\n", counts[bucketPending])
	fmt.Fprintf(&b, "- 🔍 Awaiting triage: **%d**\n", counts[bucketTriage])
	fmt.Fprintf(&b, "- ℹ️ Other states: **%d**\n", counts[bucketOther])
	fmt.Fprintf(&b, "- Total tracked resources: **%d**\n\n", len(latest))

	if len(latest) == 0 {
		fmt.Fprintf(&b, "> No SCW events recorded yet in `%s`.\n", source)
		return b.String()
	}

	b.WriteString("| Resource | Last status | Last checksum | Labels | Last run ID | Last ts |\n")
	b.WriteString("|---|---|---|---|---|---|\n")

	names := make([]string, 0, len(latest))
	for name := range latest {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		ev := latest[name]
		checksum := ""
		if ev.PostChecksum != nil {
			checksum = *ev.PostChecksum
		}
		runID := ""
		if v, ok := ev.Meta["run_id"].(string); ok {
			runID = v
		}
		fmt.Fprintf(&b, "| `%s` | %s | `%s` | %s | `%s` | `%s` |\n",
			name, statusLabel(ev), checksum, strings.Join(ev.Labels, ", "), runID, ev.TS)
	}

	fmt.Fprintf(&b, "\n> Source: `%s` (StegVerse State Engine).\n", source)
	return b.String()
}
