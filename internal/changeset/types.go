// Package changeset implements the changeset authoring engine: the data
// model for release intent, the interactive builder that resolves which
// packages need which bump, and the serializer that persists each changeset
// as a markdown document under the changeset directory.
package changeset

// Bump is a version bump severity.
type Bump string

const (
	BumpMajor Bump = "major"
	BumpMinor Bump = "minor"
	BumpPatch Bump = "patch"
	// BumpNone is a declared neutral severity. No code path assigns it today
	// (ParseBump maps unknown types to major), so the grouped serializer
	// never emits a "none" block; the value exists to keep the severity
	// ordering total for a future no-op bump.
	BumpNone Bump = "none"
)

// BumpOrder returns all severities in their fixed grouping and display
// order: major, minor, patch, none.
func BumpOrder() []Bump {
	return []Bump{BumpMajor, BumpMinor, BumpPatch, BumpNone}
}

// ParseBump maps a bump type string to a Bump. Any value that is not minor,
// patch, or none is treated as major, so a corrupted or future bump type
// fails toward the safest (largest) release.
func ParseBump(s string) Bump {
	switch Bump(s) {
	case BumpMinor:
		return BumpMinor
	case BumpPatch:
		return BumpPatch
	case BumpNone:
		return BumpNone
	default:
		return BumpMajor
	}
}

// Release declares the minimum bump severity required for one package.
type Release struct {
	// Name is the package identifier; always a member of the workspace
	// package set the builder was given.
	Name string
	// Type is the bump severity.
	Type Bump
}

// CategoryOfChange is one categorized description collected during the
// optional category-of-change workflow.
type CategoryOfChange struct {
	// Category is the one-word kind title, e.g. "Added".
	Category string
	// Description is the free-text description for this category.
	Description string
	// Bump scopes the entry to one severity group when descriptions were
	// collected per group. Empty means the entry applies to every release in
	// the changeset.
	Bump Bump
}

// Changeset is one immutable, fully resolved unit of release intent.
// Created by the Builder once all input has been collected and consumed
// exactly once by Write; never mutated afterwards.
type Changeset struct {
	// Summary is the free-text change summary. Empty only when the
	// category-of-change workflow supplied categorized descriptions instead.
	Summary string
	// Releases lists the package bumps, package names unique.
	Releases []Release
	// Categories holds the categorized descriptions, empty unless the
	// category-of-change workflow was engaged.
	Categories []CategoryOfChange
	// Confirmed records whether the changeset needs no further confirmation
	// before being written.
	Confirmed bool
}

// ReleasesFor returns the releases with the given bump severity, preserving
// order.
func (c *Changeset) ReleasesFor(bump Bump) []Release {
	var out []Release
	for _, r := range c.Releases {
		if r.Type == bump {
			out = append(out, r)
		}
	}
	return out
}

// CategoriesFor returns the category entries that apply to the given bump
// severity: entries scoped to that severity plus unscoped entries.
func (c *Changeset) CategoriesFor(bump Bump) []CategoryOfChange {
	var out []CategoryOfChange
	for _, cat := range c.Categories {
		if cat.Bump == "" || cat.Bump == bump {
			out = append(out, cat)
		}
	}
	return out
}
