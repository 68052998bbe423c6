package orchestrator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tracker-tv/github-hygiene-bot/internal/service"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

// Autopatcher drives the remediation service over the pending entries of a
// fix queue and writes the outcome back into the queue.
type Autopatcher struct {
	remediation service.RemediationService
	// Limit caps the number of entries attempted per run. Zero is no cap.
	Limit int
}

func NewAutopatcher(remediation service.RemediationService, limit int) *Autopatcher {
	return &Autopatcher{remediation: remediation, Limit: limit}
}

// Apply attempts every pending entry in order. The queue entries are
// updated in place; an error is returned only when ctx is cancelled or an
// entry cannot be attempted at all.
func (a *Autopatcher) Apply(ctx context.Context, queue *models.FixQueue) ([]models.RemediationResult, error) {
	results := []models.RemediationResult{}

	for i := range queue.Items {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if queue.Items[i].Status != models.FixStatusPending {
			continue
		}
		if a.Limit > 0 && len(results) >= a.Limit {
			log.Info().Int("limit", a.Limit).Msg("autopatch limit reached")
			break
		}

		res, err := a.remediation.Remediate(ctx, queue.Items[i])
		if err != nil {
			return results, fmt.Errorf("remediating %s:%s: %w", queue.Items[i].Repo, queue.Items[i].Path, err)
		}
		queue.Items[i] = res.Entry
		results = append(results, *res)
	}

	return results, nil
}
