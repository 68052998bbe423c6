package orchestrator

import (
	"github.com/rs/zerolog/log"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

// fixQueueBuilder flattens scan reports into fix-queue entries, keeping the
// first entry per (repo, path).
type fixQueueBuilder struct {
	items []models.FixQueueEntry
	seen  map[[2]string]bool
}

func newFixQueueBuilder() *fixQueueBuilder {
	return &fixQueueBuilder{
		items: []models.FixQueueEntry{},
		seen:  make(map[[2]string]bool),
	}
}

func (b *fixQueueBuilder) add(repo string, rep *models.ScanReport) {
	for _, item := range rep.StructureQueue {
		b.append(repo, item, models.QueueStructure)
	}
	for _, item := range rep.LogicQueue {
		b.append(repo, item, models.QueueLogic)
	}
}

func (b *fixQueueBuilder) append(repo string, item models.QueueItem, kind models.QueueKind) {
	if err := item.Validate(kind); err != nil {
		log.Warn().Err(err).Str("repo", repo).Msg("dropping invalid queue item")
		return
	}
	key := [2]string{repo, item.Path}
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.items = append(b.items, Entry(repo, item, kind))
}

// Entry reshapes a queue item for the org-level fix queue. Logic items are
// always triage regardless of the repair they would need.
func Entry(repo string, item models.QueueItem, kind models.QueueKind) models.FixQueueEntry {
	e := models.FixQueueEntry{
		Repo:             repo,
		Path:             item.Path,
		Action:           item.Action,
		Reason:           item.Reason,
		WantedEpoch:      item.WantedEpoch,
		WantedVersion:    item.WantedVersion,
		Status:           models.FixStatusPending,
		RiskScore:        item.RiskScore,
		DependsOnSecrets: item.DependsOnSecrets,
	}
	if kind == models.QueueLogic {
		e.Action = models.QueueActionTriage
		e.Status = models.FixStatusTriage
	}
	return e
}
