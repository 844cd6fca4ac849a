// Package gitutil detects which workspace packages have changed since the
// base branch. It uses the go-git library so no git CLI installation is
// required. Detection is best-effort: a missing repository or unresolvable
// base branch yields an empty result, never an error that blocks authoring.
package gitutil

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/raveheart1/changeset/internal/workspace"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it is a no-op.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations. Pass nil to
// disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ChangedPackages returns the names of workspace packages containing files
// that differ between HEAD and the base branch. Returns an empty slice, with
// a false ok flag, when the repository or base branch cannot be resolved.
func ChangedPackages(root, baseBranch string, packages []workspace.Package) (changed []string, ok bool) {
	files, err := changedFiles(root, baseBranch)
	if err != nil {
		logDebug("[git] change detection unavailable: %v", err)
		return nil, false
	}

	return mapToPackages(files, packages), true
}

// changedFiles diffs the HEAD tree against the base branch tree and returns
// the union of paths touched on either side.
func changedFiles(root, baseBranch string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", root, err)
	}

	baseTree, err := resolveBranchTree(repo, baseBranch)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}
	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting HEAD commit: %w", err)
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD tree: %w", err)
	}

	changes, err := object.DiffTree(baseTree, headTree)
	if err != nil {
		return nil, fmt.Errorf("diffing against %s: %w", baseBranch, err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, change := range changes {
		for _, name := range []string{change.From.Name, change.To.Name} {
			if name != "" && !seen[name] {
				seen[name] = true
				files = append(files, name)
			}
		}
	}

	logDebug("[git] %d files changed since %s", len(files), baseBranch)
	return files, nil
}

// resolveBranchTree resolves a branch to its commit tree, trying the local
// branch first and falling back to the origin remote.
func resolveBranchTree(repo *git.Repository, branch string) (*object.Tree, error) {
	refNames := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(branch),
		plumbing.NewRemoteReferenceName("origin", branch),
	}

	var ref *plumbing.Reference
	var err error
	for _, name := range refNames {
		ref, err = repo.Reference(name, true)
		if err == nil {
			break
		}
	}
	if ref == nil {
		return nil, fmt.Errorf("resolving base branch %q: %w", branch, err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting commit for %s: %w", ref.Name(), err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting tree for %s: %w", ref.Name(), err)
	}
	return tree, nil
}

// mapToPackages maps changed file paths to the workspace packages whose
// directories contain them, preserving workspace order.
func mapToPackages(files []string, packages []workspace.Package) []string {
	var changed []string
	for _, pkg := range packages {
		prefix := path.Clean(pkg.Dir) + "/"
		for _, file := range files {
			if strings.HasPrefix(file, prefix) {
				changed = append(changed, pkg.Name)
				break
			}
		}
	}
	return changed
}
