package changeset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raveheart1/changeset/internal/format"
)

// WriteOptions configures where and how a changeset is persisted.
type WriteOptions struct {
	// Dir is the output directory, created if missing.
	Dir string
	// Format is the text normalization applied before writing.
	Format format.Options
}

// Write renders a changeset, applies the formatting configuration, and
// persists it as <dir>/<id>.md under a freshly generated identifier.
// Formatting errors propagate and nothing is written. Returns the identifier.
func Write(cs *Changeset, opts WriteOptions) (string, error) {
	id := NewID()

	formatted, err := format.Apply(Render(cs), opts.Format)
	if err != nil {
		return "", fmt.Errorf("formatting changeset: %w", err)
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating changeset directory %s: %w", opts.Dir, err)
	}

	path := filepath.Join(opts.Dir, id+".md")
	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		return "", fmt.Errorf("writing changeset %s: %w", path, err)
	}

	return id, nil
}

// Render produces the textual changeset document. Without categories the
// document is a single release header followed by the free-text summary.
// With categories, releases are grouped into one header block per severity
// (fixed order: major, minor, patch), each followed by its category lines.
//
// Package names are always quoted in the header: names like "@scope/name"
// contain characters significant to the YAML sub-format.
func Render(cs *Changeset) string {
	var b strings.Builder

	if len(cs.Categories) == 0 {
		renderHeader(&b, cs.Releases)
		b.WriteString("\n")
		b.WriteString(cs.Summary)
		b.WriteString("\n")
		return b.String()
	}

	for _, bump := range BumpOrder() {
		group := cs.ReleasesFor(bump)
		if len(group) == 0 {
			continue
		}
		renderHeader(&b, group)
		for _, cat := range cs.CategoriesFor(bump) {
			fmt.Fprintf(&b, "- [ %s ] %s\n", cat.Category, cat.Description)
		}
	}

	if cs.Summary != "" {
		b.WriteString("\n")
		b.WriteString(cs.Summary)
		b.WriteString("\n")
	}

	return b.String()
}

// renderHeader writes one ----delimited block of quoted release lines.
func renderHeader(b *strings.Builder, releases []Release) {
	b.WriteString("---\n")
	for _, rel := range releases {
		fmt.Fprintf(b, "%q: %s\n", rel.Name, rel.Type)
	}
	b.WriteString("---\n")
}
