package service

import (
	"github.com/tracker-tv/github-hygiene-bot/internal/svmeta"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

type Freshness int

const (
	FreshnessCurrent Freshness = iota
	FreshnessStale
	// FreshnessUnversioned marks a file without a metadata block. It is
	// always treated as stale.
	FreshnessUnversioned
)

func (f Freshness) NeedsRepair() bool {
	return f != FreshnessCurrent
}

// Evaluate classifies meta against the policy epoch and minimum version.
// found is false when the file carried no metadata block.
func Evaluate(policyEpoch int, minVersion string, meta models.SvMeta, found bool) Freshness {
	if !found {
		return FreshnessUnversioned
	}
	if meta.Epoch < policyEpoch {
		return FreshnessStale
	}
	if svmeta.ParseVersion(meta.Version).Less(svmeta.ParseVersion(minVersion)) {
		return FreshnessStale
	}
	return FreshnessCurrent
}
