package models

import "time"

const (
	OrgScanSig  = "orgscan:v4"
	FixQueueSig = "fixqueue:v1"
)

type ScanReport struct {
	Repo           string      `json:"repo"`
	Ref            string      `json:"ref"`
	ScannedAt      time.Time   `json:"scanned_utc"`
	StructureQueue []QueueItem `json:"structure_queue"`
	LogicQueue     []QueueItem `json:"logic_queue"`
	Notes          []string    `json:"notes"`
	IndexPresent   bool        `json:"index_present"`
	Error          string      `json:"error,omitempty"`
}

// Failed reports whether the scan of this repository was aborted.
func (r *ScanReport) Failed() bool {
	return r.Error != ""
}

type OrgReport struct {
	Sig          string       `json:"sig"`
	GeneratedUTC time.Time    `json:"generated_utc"`
	PolicyEpoch  int          `json:"policy_epoch"`
	Repos        []ScanReport `json:"repos"`
	FixQueue     FixQueue     `json:"fix_queue"`
}

func NewOrgReport(policyEpoch int, now time.Time) *OrgReport {
	return &OrgReport{
		Sig:          OrgScanSig,
		GeneratedUTC: now,
		PolicyEpoch:  policyEpoch,
		Repos:        []ScanReport{},
		FixQueue: FixQueue{
			Sig:   FixQueueSig,
			Items: []FixQueueEntry{},
		},
	}
}

// Failures returns the reports of repositories whose scan was aborted.
func (r *OrgReport) Failures() []ScanReport {
	var out []ScanReport
	for _, rep := range r.Repos {
		if rep.Failed() {
			out = append(out, rep)
		}
	}
	return out
}
