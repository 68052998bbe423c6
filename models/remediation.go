package models

type RemediationOutcome string

const (
	OutcomeCreated RemediationOutcome = "created"
	OutcomeUpdated RemediationOutcome = "updated"
	OutcomeSkipped RemediationOutcome = "skipped"
	OutcomeDryRun  RemediationOutcome = "dry_run"
	OutcomeFailed  RemediationOutcome = "failed"
)

// RemediationResult is the outcome of one autopatch attempt. Entry carries
// the updated status and attempt time.
type RemediationResult struct {
	Entry   FixQueueEntry      `json:"entry"`
	Outcome RemediationOutcome `json:"outcome"`
	Branch  string             `json:"branch,omitempty"`
	PRURL   string             `json:"pr_url,omitempty"`
	Error   string             `json:"error,omitempty"`
}
