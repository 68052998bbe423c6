// Package svmeta reads and writes the STEGVERSE FILE METADATA block that
// tracked files embed to declare their version, build and policy epoch.
package svmeta

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"github.com/tracker-tv/github-hygiene-bot/models"
)

const (
	beginMarker = "=== STEGVERSE FILE METADATA ==="
	endMarker   = "=== END STEGVERSE FILE METADATA ==="
)

const blockBody = `[ \t]*(?:#|")*[ \t]*===[ \t]*STEGVERSE FILE METADATA[ \t]*===[ \t]*` +
	`(.*?)` +
	`\r?\n[ \t]*(?:#|")*[ \t]*===[ \t]*END STEGVERSE FILE METADATA[ \t]*===`

var (
	// blockRe spans the block and its own line ending, LF or CRLF.
	blockRe    = regexp.MustCompile(`(?is)(?:^|\n)` + blockBody + `[ \t\r]*(?:\n|$)`)
	// stripRe also swallows every blank line after the block.
	stripRe    = regexp.MustCompile(`(?is)(?:^|\n)` + blockBody + `\s*`)
	keyValueRe = regexp.MustCompile(`(?im)^[ \t]*(?:#|")*[ \t]*(sv_[a-z0-9_]+)[ \t]*:[ \t]*(.*?)[ \t\r]*$`)
)

// Parse extracts the first metadata block of text. The boolean is false
// when text carries no block, in which case the returned value holds the
// defaults of an unversioned file.
func Parse(text string) (models.SvMeta, bool) {
	meta := models.NewSvMeta()

	m := blockRe.FindStringSubmatch(text)
	if m == nil {
		return meta, false
	}

	kv := make(map[string]string)
	for _, pair := range keyValueRe.FindAllStringSubmatch(m[1], -1) {
		kv[strings.ToLower(pair[1])] = strings.Trim(strings.TrimSpace(pair[2]), `"`)
	}

	meta.File = kv["sv_file"]
	meta.Kind = kv["sv_kind"]
	meta.Module = kv["sv_module"]
	if v, ok := kv["sv_version"]; ok && v != "" {
		meta.Version = v
	}
	if v, ok := kv["sv_build_id"]; ok && v != "" {
		meta.BuildID = v
	}
	meta.Epoch = parseEpoch(kv["sv_epoch"])
	meta.ParentBuild = kv["sv_parent_build"]
	meta.Hash = kv["sv_hash"]
	meta.Sig = kv["sv_sig"]

	return meta, true
}

func parseEpoch(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Strip removes every metadata block from text together with the newline
// before it and the whitespace after it, so hashes agree with existing
// file indexes.
func Strip(text string) string {
	return stripRe.ReplaceAllString(text, "")
}

// ContentHash hashes text with its metadata removed, so re-stamping a file
// does not change its hash.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(Strip(text)))
	return "sha256:" + hex.EncodeToString(sum[:])
}

// Compare orders a and b by (epoch, version, build id). It returns 1 when a
// is newer, -1 when older and 0 when the keys are equal.
func Compare(a, b models.SvMeta) int {
	switch {
	case a.Epoch > b.Epoch:
		return 1
	case a.Epoch < b.Epoch:
		return -1
	}
	if c := ParseVersion(a.Version).Compare(ParseVersion(b.Version)); c != 0 {
		return c
	}
	return strings.Compare(a.BuildID, b.BuildID)
}
