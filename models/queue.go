package models

import (
	"fmt"
	"time"
)

type QueueAction string

const (
	QueueActionAdd     QueueAction = "add"
	QueueActionReplace QueueAction = "replace"
	QueueActionTriage  QueueAction = "triage"
)

type QueueReason string

const (
	ReasonMissingRequired QueueReason = "missing_required"
	ReasonStaleIndex      QueueReason = "stale_metadata(index)"
	ReasonStaleTree       QueueReason = "stale_metadata(tree)"
)

type QueueKind string

const (
	QueueStructure QueueKind = "structure"
	QueueLogic     QueueKind = "logic"
)

type FixStatus string

const (
	FixStatusPending     FixStatus = "pending"
	FixStatusTriage      FixStatus = "triage"
	FixStatusFixed       FixStatus = "fixed"
	FixStatusStillBroken FixStatus = "still_broken"
)

// QueueItem is one finding for one required file of one repository.
type QueueItem struct {
	Path             string      `json:"path"`
	Action           QueueAction `json:"action"`
	Reason           QueueReason `json:"reason"`
	WantedEpoch      int         `json:"wanted_epoch"`
	WantedVersion    string      `json:"wanted_version"`
	FoundMetadata    *SvMeta     `json:"meta_found"`
	DependsOnSecrets []string    `json:"depends_on_secrets"`
	RiskScore        float64     `json:"risk_score"`
	// ProposedAction keeps the add/replace a logic item would have needed.
	ProposedAction QueueAction `json:"proposed_action,omitempty"`
}

// Validate enforces that triage items live in the logic queue and
// add/replace items in the structure queue.
func (q QueueItem) Validate(kind QueueKind) error {
	if q.Path == "" {
		return fmt.Errorf("queue item has empty path")
	}
	if q.RiskScore < 0 {
		return fmt.Errorf("queue item %s has negative risk score %v", q.Path, q.RiskScore)
	}
	switch kind {
	case QueueStructure:
		if q.Action != QueueActionAdd && q.Action != QueueActionReplace {
			return fmt.Errorf("structure item %s has action %q", q.Path, q.Action)
		}
	case QueueLogic:
		if q.Action != QueueActionTriage {
			return fmt.Errorf("logic item %s has action %q", q.Path, q.Action)
		}
	default:
		return fmt.Errorf("unknown queue %q", kind)
	}
	return nil
}

// FixQueueEntry is the hand-off record consumed by the autopatch executor.
type FixQueueEntry struct {
	Repo             string      `json:"repo"`
	Path             string      `json:"path"`
	Action           QueueAction `json:"action"`
	Reason           QueueReason `json:"reason"`
	WantedEpoch      int         `json:"wanted_epoch"`
	WantedVersion    string      `json:"wanted_version"`
	Status           FixStatus   `json:"status"`
	LastAttemptUTC   *time.Time  `json:"last_attempt_utc"`
	RiskScore        float64     `json:"risk_score"`
	DependsOnSecrets []string    `json:"depends_on_secrets,omitempty"`
	PRURL            string      `json:"pr_url,omitempty"`
}

type FixQueue struct {
	Sig   string          `json:"sig"`
	Items []FixQueueEntry `json:"items"`
}
