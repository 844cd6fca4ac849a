package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/changeset/internal/changeset"
	"github.com/raveheart1/changeset/internal/format"
)

// writeChangeset persists a changeset under dir/.changeset and returns its id.
func writeChangeset(t *testing.T, dir string, cs changeset.Changeset) string {
	t.Helper()

	id, err := changeset.Write(&cs, changeset.WriteOptions{
		Dir:    filepath.Join(dir, ".changeset"),
		Format: format.DefaultOptions(),
	})
	require.NoError(t, err)
	return id
}

func TestStatusCommand(t *testing.T) {
	t.Run("no changeset directory", func(t *testing.T) {
		out, err := execute(t, "status", "-C", t.TempDir())
		require.NoError(t, err)
		assert.Contains(t, out, "no changeset directory")
	})

	t.Run("empty directory reports no pending changesets", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".changeset"), 0o755))

		out, err := execute(t, "status", "-C", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "no pending changesets")
	})

	t.Run("groups bumps by severity and skips the readme", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".changeset"), 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, ".changeset", "README.md"), []byte("# docs"), 0o644))

		writeChangeset(t, dir, changeset.Changeset{
			Summary: "breaking rework",
			Releases: []changeset.Release{
				{Name: "core", Type: changeset.BumpMajor},
				{Name: "utils", Type: changeset.BumpPatch},
			},
		})
		writeChangeset(t, dir, changeset.Changeset{
			Summary:  "small feature",
			Releases: []changeset.Release{{Name: "client", Type: changeset.BumpMinor}},
		})

		out, err := execute(t, "status", "-C", dir, "--verbose=false")
		require.NoError(t, err)
		assert.Contains(t, out, "core")
		assert.Contains(t, out, "client")
		assert.Contains(t, out, "utils")
		assert.Contains(t, out, "2 pending changeset(s)")
	})

	t.Run("verbose includes summaries", func(t *testing.T) {
		dir := t.TempDir()
		writeChangeset(t, dir, changeset.Changeset{
			Summary:  "the full story",
			Releases: []changeset.Release{{Name: "core", Type: changeset.BumpPatch}},
		})

		out, err := execute(t, "status", "-C", dir, "--verbose")
		require.NoError(t, err)
		assert.Contains(t, out, "the full story")
	})

	t.Run("malformed changeset file is an error", func(t *testing.T) {
		dir := t.TempDir()
		csDir := filepath.Join(dir, ".changeset")
		require.NoError(t, os.MkdirAll(csDir, 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(csDir, "broken.md"), []byte("not a changeset"), 0o644))

		_, err := execute(t, "status", "-C", dir, "--verbose=false")
		require.Error(t, err)
	})
}
