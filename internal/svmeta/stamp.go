package svmeta

import (
	"fmt"
	"path"
	"strings"

	"github.com/tracker-tv/github-hygiene-bot/models"
)

type Style int

const (
	// StyleHash prefixes every line with "# " (YAML, shell, TOML).
	StyleHash Style = iota
	// StyleMarkdown wraps a hash-style block in an HTML comment.
	StyleMarkdown
)

// StyleFor picks the block style from a file path.
func StyleFor(p string) Style {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return StyleMarkdown
	default:
		return StyleHash
	}
}

// Stamp renders meta as a metadata block terminated by a newline.
func Stamp(meta models.SvMeta, style Style) string {
	fields := []struct{ key, value string }{
		{"sv_file", meta.File},
		{"sv_kind", meta.Kind},
		{"sv_module", meta.Module},
		{"sv_version", meta.Version},
		{"sv_build_id", meta.BuildID},
		{"sv_epoch", fmt.Sprint(meta.Epoch)},
		{"sv_parent_build", meta.ParentBuild},
		{"sv_hash", meta.Hash},
		{"sv_sig", meta.Sig},
	}

	var b strings.Builder
	if style == StyleMarkdown {
		b.WriteString("<!--\n")
	}
	b.WriteString("# " + beginMarker + "\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "# %s: %s\n", f.key, f.value)
	}
	b.WriteString("# " + endMarker + "\n")
	if style == StyleMarkdown {
		b.WriteString("-->\n")
	}
	return b.String()
}

// Restamp replaces the metadata block of text with meta, or prepends one
// when text has none. An existing block keeps its surrounding lines, so a
// markdown comment wrapper is not duplicated.
func Restamp(text string, meta models.SvMeta, style Style) string {
	crlf := strings.Contains(text, "\r\n")
	loc := blockRe.FindStringIndex(text)
	if loc == nil {
		return lineEndings(Stamp(meta, style), crlf) + text
	}
	start := loc[0]
	if strings.HasPrefix(text[start:], "\n") {
		start++
	}
	return text[:start] + lineEndings(Stamp(meta, StyleHash), crlf) + text[loc[1]:]
}

func lineEndings(s string, crlf bool) string {
	if !crlf {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\r\n")
}
