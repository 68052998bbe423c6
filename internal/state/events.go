package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/tracker-tv/github-hygiene-bot/models"
)

const (
	KindFirstAid  = "workflow_first_aid"
	KindFixQueue  = "fix_queue"
	KindAutopatch = "autopatch"

	EventTypeRepair = "repair"
	EventTypeScan   = "scan"

	StatusDispatchOnly = "dispatch_added_only"

	timestampLayout = "2006-01-02T15:04:05Z"
)

// Timestamp formats t the way every event ts is written, so that string
// order is time order.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// BrokenWorkflow is a ["file.yml", "ErrorType"] pair of a first-aid summary.
type BrokenWorkflow struct {
	Name      string
	ErrorType string
}

func (b *BrokenWorkflow) UnmarshalJSON(data []byte) error {
	var pair []any
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) >= 2 {
			b.Name = fmt.Sprint(pair[0])
			b.ErrorType = fmt.Sprint(pair[1])
			return nil
		}
		if len(pair) == 1 {
			b.Name = fmt.Sprint(pair[0])
			b.ErrorType = "UnknownError"
			return nil
		}
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw != nil {
		b.Name = fmt.Sprint(raw)
		b.ErrorType = "UnknownError"
	}
	return nil
}

// FirstAidSummary is the FIRST_AID_SUMMARY.json written by the workflow
// first-aid sweep.
type FirstAidSummary struct {
	Fixed         []string         `json:"fixed"`
	AddedDispatch []string         `json:"added_dispatch"`
	StillBroken   []BrokenWorkflow `json:"still_broken"`
}

func LoadFirstAidSummary(file string) (*FirstAidSummary, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading first-aid summary: %w", err)
	}
	var summary FirstAidSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("decoding first-aid summary %s: %w", file, err)
	}
	return &summary, nil
}

// FromFirstAid turns a first-aid summary into repair events. root is the
// working tree the workflow files are checksummed in.
func FromFirstAid(summary *FirstAidSummary, root string, ts time.Time, rc RunContext) []models.Event {
	events := []models.Event{}
	fixed := make(map[string]bool, len(summary.Fixed))
	dispatch := make(map[string]bool, len(summary.AddedDispatch))
	for _, name := range summary.Fixed {
		fixed[name] = true
	}
	for _, name := range summary.AddedDispatch {
		dispatch[name] = true
	}

	workflowEvent := func(name, status string, labels ...string) models.Event {
		rel := path.Join(".github", "workflows", name)
		return models.Event{
			TS:           Timestamp(ts),
			Namespace:    models.EventNamespaceSCW,
			Kind:         KindFirstAid,
			EventType:    EventTypeRepair,
			Status:       status,
			ResourceType: "workflow",
			ResourceName: name,
			Path:         rel,
			PostChecksum: Checksum(filepath.Join(root, filepath.FromSlash(rel))),
			Labels:       labels,
			Meta:         rc.Meta(),
		}
	}

	for _, name := range summary.Fixed {
		change := "no_dispatch_change"
		if dispatch[name] {
			change = "dispatch_injected"
		}
		events = append(events, workflowEvent(name, string(models.FixStatusFixed), "first_aid", "repair", change))
	}

	seen := make(map[string]bool)
	for _, name := range summary.AddedDispatch {
		if fixed[name] || seen[name] {
			continue
		}
		seen[name] = true
		events = append(events, workflowEvent(name, StatusDispatchOnly, "first_aid", "dispatch_only"))
	}

	for _, b := range summary.StillBroken {
		if b.Name == "" {
			continue
		}
		ev := workflowEvent(b.Name, string(models.FixStatusStillBroken), "first_aid", "broken")
		ev.ErrorType = b.ErrorType
		events = append(events, ev)
	}

	return events
}

// FromFixQueue records one scan event per fix-queue entry of report.
func FromFixQueue(report *models.OrgReport, rc RunContext) []models.Event {
	events := make([]models.Event, 0, len(report.FixQueue.Items))
	for _, e := range report.FixQueue.Items {
		meta := rc.Meta()
		meta["target_repo"] = e.Repo
		meta["risk_score"] = e.RiskScore
		meta["wanted_epoch"] = e.WantedEpoch
		meta["wanted_version"] = e.WantedVersion

		events = append(events, models.Event{
			TS:           Timestamp(report.GeneratedUTC),
			Namespace:    models.EventNamespaceSCW,
			Kind:         KindFixQueue,
			EventType:    EventTypeScan,
			Status:       string(e.Status),
			ResourceType: "file",
			ResourceName: ResourceName(e.Repo, e.Path),
			Path:         e.Path,
			Labels:       []string{"org_scan", string(e.Action), string(e.Reason)},
			Meta:         meta,
		})
	}
	return events
}

// FromRemediation records one repair event per autopatch attempt.
func FromRemediation(results []models.RemediationResult, ts time.Time, rc RunContext) []models.Event {
	events := make([]models.Event, 0, len(results))
	for _, r := range results {
		meta := rc.Meta()
		meta["target_repo"] = r.Entry.Repo
		meta["branch"] = r.Branch
		if r.PRURL != "" {
			meta["pr_url"] = r.PRURL
		}

		status := string(r.Entry.Status)
		if r.Outcome == models.OutcomeDryRun {
			status = string(models.OutcomeDryRun)
		}
		ev := models.Event{
			TS:           Timestamp(ts),
			Namespace:    models.EventNamespaceSCW,
			Kind:         KindAutopatch,
			EventType:    EventTypeRepair,
			Status:       status,
			ResourceType: "file",
			ResourceName: ResourceName(r.Entry.Repo, r.Entry.Path),
			Path:         r.Entry.Path,
			Labels:       []string{"autopatch", string(r.Outcome)},
			Meta:         meta,
		}
		if r.Error != "" {
			ev.ErrorType = "RemediationError"
			meta["error"] = r.Error
		}
		events = append(events, ev)
	}
	return events
}

func ResourceName(repo, filePath string) string {
	return repo + ":" + filePath
}
