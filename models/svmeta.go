package models

const (
	SvMetaSig      = "svmeta:v1"
	DefaultVersion = "0.0.0"
	DefaultBuildID = "00000000-000000Z"
)

// SvMeta is the provenance block embedded in a tracked file.
type SvMeta struct {
	File        string `json:"sv_file"`
	Kind        string `json:"sv_kind"`
	Module      string `json:"sv_module"`
	Version     string `json:"sv_version"`
	BuildID     string `json:"sv_build_id"`
	Epoch       int    `json:"sv_epoch"`
	ParentBuild string `json:"sv_parent_build"`
	Hash        string `json:"sv_hash"`
	Sig         string `json:"sv_sig"`
}

// NewSvMeta returns an SvMeta carrying the defaults of an unversioned file.
func NewSvMeta() SvMeta {
	return SvMeta{
		Version: DefaultVersion,
		BuildID: DefaultBuildID,
	}
}
