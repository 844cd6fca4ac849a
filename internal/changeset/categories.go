package changeset

import "strings"

// CategoryCatalog is the fixed, ordered list of change categories offered
// during the category-of-change workflow. The word before the first space is
// the canonical kind title used in serialized documents.
var CategoryCatalog = []string{
	"Added - a new feature or capability",
	"Changed - existing behavior was updated",
	"Removed - a feature or API was removed",
	"Types - type definitions only",
	"Documentation - docs only, no code changes",
	"Infra - build, CI, or tooling changes",
	"Misc - anything else",
}

// KindTitle derives the canonical one-word kind title from a catalog label:
// the text preceding the first space, or the whole label when it has none.
func KindTitle(label string) string {
	if i := strings.IndexByte(label, ' '); i >= 0 {
		return label[:i]
	}
	return label
}
