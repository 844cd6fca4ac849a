package changeset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/changeset/internal/errors"
	"github.com/raveheart1/changeset/internal/prompt"
	"github.com/raveheart1/changeset/internal/workspace"
)

func singlePackage(name, version string) []workspace.Package {
	return []workspace.Package{{Name: name, Version: version, Dir: "packages/" + name}}
}

func threePackages() []workspace.Package {
	return []workspace.Package{
		{Name: "a", Version: "0.5.0", Dir: "packages/a"},
		{Name: "b", Version: "1.2.0", Dir: "packages/b"},
		{Name: "c", Version: "2.0.1", Dir: "packages/c"},
	}
}

func TestBuilder_SinglePackage(t *testing.T) {
	t.Parallel()

	t.Run("patch bump with inline summary", func(t *testing.T) {
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			SelectAnswers: []string{"patch"},
			InputAnswers:  []string{"fix the widget"},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: singlePackage("foo", "1.0.0")}

		changesets, err := b.Run()
		require.NoError(t, err)
		require.Len(t, changesets, 1)

		cs := changesets[0]
		assert.Equal(t, []Release{{Name: "foo", Type: BumpPatch}}, cs.Releases)
		assert.Equal(t, "fix the widget", cs.Summary)
		assert.Empty(t, cs.Categories)
		assert.False(t, cs.Confirmed)
	})

	t.Run("first major release confirmed", func(t *testing.T) {
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			SelectAnswers:  []string{"major"},
			ConfirmAnswers: []bool{true},
			InputAnswers:   []string{"breaking change"},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: singlePackage("foo", "0.5.0")}

		changesets, err := b.Run()
		require.NoError(t, err)
		require.Len(t, changesets, 1)
		assert.Equal(t, BumpMajor, changesets[0].Releases[0].Type)
	})

	t.Run("first major release declined aborts", func(t *testing.T) {
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			SelectAnswers:  []string{"major"},
			ConfirmAnswers: []bool{false},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: singlePackage("foo", "0.5.0")}

		changesets, err := b.Run()
		require.Error(t, err)
		assert.True(t, errors.IsUserAbort(err))
		assert.Nil(t, changesets)
	})

	t.Run("major above one point zero needs no confirmation", func(t *testing.T) {
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			SelectAnswers: []string{"major"},
			InputAnswers:  []string{"breaking change"},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: singlePackage("foo", "2.3.4")}

		// No ConfirmAnswers are scripted, so reaching this point proves the
		// confirmation was never asked.
		changesets, err := b.Run()
		require.NoError(t, err)
		assert.Equal(t, BumpMajor, changesets[0].Releases[0].Type)
	})
}

func TestBuilder_SummaryProtocol(t *testing.T) {
	t.Parallel()

	t.Run("editor text accepted and pre-confirmed", func(t *testing.T) {
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			SelectAnswers: []string{"patch"},
			InputAnswers:  []string{""},
			EditorAnswers: []prompt.EditorAnswer{
				{Text: "written in the editor\n\n# Please enter a summary for your changes.\n"},
			},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: singlePackage("foo", "1.0.0")}

		changesets, err := b.Run()
		require.NoError(t, err)
		assert.Equal(t, "written in the editor", changesets[0].Summary)
		assert.True(t, changesets[0].Confirmed)
	})

	t.Run("unavailable editor falls back to retry loop", func(t *testing.T) {
		t.Parallel()

		out := &bytes.Buffer{}
		p := &prompt.ScriptedPrompter{
			SelectAnswers: []string{"patch"},
			InputAnswers:  []string{"", "", "finally a summary"},
			EditorAnswers: []prompt.EditorAnswer{{Err: prompt.ErrNoEditor}},
		}
		b := &Builder{Prompter: p, Out: out, Packages: singlePackage("foo", "1.0.0")}

		changesets, err := b.Run()
		require.NoError(t, err)
		assert.Equal(t, "finally a summary", changesets[0].Summary)
		assert.False(t, changesets[0].Confirmed)
		assert.Contains(t, out.String(), "editor unavailable")
	})

	t.Run("empty editor result falls back to retry loop", func(t *testing.T) {
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			SelectAnswers: []string{"patch"},
			InputAnswers:  []string{"", "retried summary"},
			EditorAnswers: []prompt.EditorAnswer{{Text: "# only comments\n"}},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: singlePackage("foo", "1.0.0")}

		changesets, err := b.Run()
		require.NoError(t, err)
		assert.Equal(t, "retried summary", changesets[0].Summary)
	})
}

func TestBuilder_MultiPackage(t *testing.T) {
	t.Parallel()

	t.Run("elimination partitions candidates", func(t *testing.T) {
		// Spec scenario: select all of a, b, c; no categories; a major
		// (confirmed), b minor, c falls through to patch.
		t.Parallel()

		out := &bytes.Buffer{}
		p := &prompt.ScriptedPrompter{
			MultiAnswers: [][]string{
				{"a", "b", "c"}, // package selection
				{},              // no categories
				{"a"},           // major round
				{"b"},           // minor round
			},
			ConfirmAnswers: []bool{true}, // a is pre-1.0.0
			InputAnswers:   []string{"the big release"},
		}
		b := &Builder{
			Prompter:      p,
			Out:           out,
			Packages:      threePackages(),
			Changed:       []string{"a", "b"},
			AskCategories: true,
		}

		changesets, err := b.Run()
		require.NoError(t, err)
		require.Len(t, changesets, 1)

		cs := changesets[0]
		assert.ElementsMatch(t, []Release{
			{Name: "a", Type: BumpMajor},
			{Name: "b", Type: BumpMinor},
			{Name: "c", Type: BumpPatch},
		}, cs.Releases)
		assert.Equal(t, "the big release", cs.Summary)
		assert.False(t, cs.Confirmed)
		assert.Contains(t, out.String(), "patch bump assumed for: c")
	})

	t.Run("empty package selection re-prompts", func(t *testing.T) {
		t.Parallel()

		out := &bytes.Buffer{}
		p := &prompt.ScriptedPrompter{
			MultiAnswers: [][]string{
				{},    // first attempt empty
				{"b"}, // second attempt
				{},    // no categories
				{},    // no majors
				{},    // no minors
			},
			InputAnswers: []string{"just b"},
		}
		b := &Builder{Prompter: p, Out: out, Packages: threePackages(), AskCategories: true}

		changesets, err := b.Run()
		require.NoError(t, err)
		assert.Equal(t, []Release{{Name: "b", Type: BumpPatch}}, changesets[0].Releases)
		assert.Contains(t, out.String(), "select at least one package")
	})

	t.Run("declined first major falls through to later rounds", func(t *testing.T) {
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			MultiAnswers: [][]string{
				{"a", "b"}, // selection
				{},         // no categories
				{"a"},      // major round picks a
				{},         // minor round picks nothing
			},
			ConfirmAnswers: []bool{false}, // decline a's first major
			InputAnswers:   []string{"summary"},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: threePackages(), AskCategories: true}

		changesets, err := b.Run()
		require.NoError(t, err)

		cs := changesets[0]
		require.Len(t, cs.Releases, 2)
		for _, rel := range cs.Releases {
			assert.NotEqual(t, BumpMajor, rel.Type, "declined package must never be major")
		}
		assert.ElementsMatch(t, []Release{
			{Name: "a", Type: BumpPatch},
			{Name: "b", Type: BumpPatch},
		}, cs.Releases)
	})

	t.Run("category workflow disabled skips the category prompt", func(t *testing.T) {
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			MultiAnswers: [][]string{
				{"b"}, // selection
				{},    // major round
				{},    // minor round
			},
			InputAnswers: []string{"no categories offered"},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: threePackages(), AskCategories: false}

		changesets, err := b.Run()
		require.NoError(t, err)
		assert.Len(t, changesets, 1)
		for _, asked := range p.Asked {
			assert.NotContains(t, asked, "kind of change are you making")
		}
	})
}

func TestBuilder_CategoryFanOut(t *testing.T) {
	t.Parallel()

	t.Run("shared messages produce one changeset", func(t *testing.T) {
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			MultiAnswers: [][]string{
				{"b", "c"},                       // selection
				{CategoryCatalog[0], CategoryCatalog[1]}, // Added, Changed
				{"b"},                            // major round
				{},                               // minor round (c falls to patch)
			},
			ConfirmAnswers: []bool{true}, // reuse same message per bump type
			InputAnswers: []string{
				"added for major", "changed for major",
				"added for patch", "changed for patch",
			},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: threePackages(), AskCategories: true}

		changesets, err := b.Run()
		require.NoError(t, err)
		require.Len(t, changesets, 1)

		cs := changesets[0]
		assert.True(t, cs.Confirmed)
		assert.Empty(t, cs.Summary, "summary is never prompted in the category path")
		assert.Equal(t, []CategoryOfChange{
			{Category: "Added", Description: "added for major", Bump: BumpMajor},
			{Category: "Changed", Description: "changed for major", Bump: BumpMajor},
			{Category: "Added", Description: "added for patch", Bump: BumpPatch},
			{Category: "Changed", Description: "changed for patch", Bump: BumpPatch},
		}, cs.Categories)
		assert.ElementsMatch(t, []Release{
			{Name: "b", Type: BumpMajor},
			{Name: "c", Type: BumpPatch},
		}, cs.Releases)
	})

	t.Run("individual messages produce one changeset per release", func(t *testing.T) {
		// Spec scenario: two categories, reuse=false, two releases of
		// different severities -> two changesets, each with one release and
		// its own descriptions.
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			MultiAnswers: [][]string{
				{"b", "c"},                       // selection
				{CategoryCatalog[0], CategoryCatalog[1]}, // Added, Changed
				{"b"},                            // major round
				{"c"},                            // minor round
			},
			ConfirmAnswers: []bool{false}, // individual messages
			InputAnswers: []string{
				"b added", "b changed",
				"c added", "c changed",
			},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: threePackages(), AskCategories: true}

		changesets, err := b.Run()
		require.NoError(t, err)
		require.Len(t, changesets, 2)

		assert.Equal(t, []Release{{Name: "b", Type: BumpMajor}}, changesets[0].Releases)
		assert.Equal(t, []CategoryOfChange{
			{Category: "Added", Description: "b added"},
			{Category: "Changed", Description: "b changed"},
		}, changesets[0].Categories)

		assert.Equal(t, []Release{{Name: "c", Type: BumpMinor}}, changesets[1].Releases)
		assert.Equal(t, []CategoryOfChange{
			{Category: "Added", Description: "c added"},
			{Category: "Changed", Description: "c changed"},
		}, changesets[1].Categories)

		for _, cs := range changesets {
			assert.True(t, cs.Confirmed)
			assert.Empty(t, cs.Summary)
		}
	})

	t.Run("selection order does not reorder the catalog", func(t *testing.T) {
		t.Parallel()

		p := &prompt.ScriptedPrompter{
			MultiAnswers: [][]string{
				{"b"},
				{CategoryCatalog[1], CategoryCatalog[0]}, // Changed picked before Added
				{},
				{},
			},
			ConfirmAnswers: []bool{true},
			InputAnswers:   []string{"added desc", "changed desc"},
		}
		b := &Builder{Prompter: p, Out: &bytes.Buffer{}, Packages: threePackages(), AskCategories: true}

		changesets, err := b.Run()
		require.NoError(t, err)
		require.Len(t, changesets, 1)
		require.Len(t, changesets[0].Categories, 2)
		assert.Equal(t, "Added", changesets[0].Categories[0].Category)
		assert.Equal(t, "Changed", changesets[0].Categories[1].Category)
	})
}

func TestBuilder_EmptyWorkspace(t *testing.T) {
	t.Parallel()

	b := &Builder{Prompter: &prompt.ScriptedPrompter{}, Out: &bytes.Buffer{}}
	_, err := b.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no packages")
}

func TestIsPreMajor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		version string
		want    bool
	}{
		"zero major":          {version: "0.5.0", want: true},
		"zero with v prefix":  {version: "v0.1.2", want: true},
		"one point zero":      {version: "1.0.0", want: false},
		"large major":         {version: "12.0.0", want: false},
		"prerelease pre-1.0":  {version: "0.9.0-beta.1", want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isPreMajor(tt.version))
		})
	}
}
