package models

const (
	FileIndexSig     = "fileindex:v1"
	DefaultIndexPath = "scw/file_index.json"
)

// FileIndex is the committed per-repository index of pre-extracted metadata.
type FileIndex struct {
	Sig         string       `json:"sv_index_sig"`
	Repo        string       `json:"repo,omitempty"`
	Ref         string       `json:"ref,omitempty"`
	GeneratedAt string       `json:"generated_utc,omitempty"`
	Files       []IndexEntry `json:"files"`
}

type IndexEntry struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Module  string `json:"module"`
	Version string `json:"sv_version"`
	BuildID string `json:"sv_build_id"`
	Epoch   int    `json:"sv_epoch"`
	Hash    string `json:"sv_hash"`
}

// Lookup returns the entry for path, if any.
func (idx *FileIndex) Lookup(path string) (IndexEntry, bool) {
	if idx == nil {
		return IndexEntry{}, false
	}
	for _, e := range idx.Files {
		if e.Path == path {
			return e, true
		}
	}
	return IndexEntry{}, false
}

// Meta converts the entry into an SvMeta without reading the file itself.
func (e IndexEntry) Meta() SvMeta {
	m := NewSvMeta()
	m.File = e.Path
	m.Kind = e.Kind
	m.Module = e.Module
	if e.Version != "" {
		m.Version = e.Version
	}
	m.BuildID = e.BuildID
	if e.Epoch > 0 {
		m.Epoch = e.Epoch
	}
	m.Hash = e.Hash
	return m
}
