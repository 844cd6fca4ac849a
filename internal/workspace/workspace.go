// Package workspace discovers the member packages of a multi-package
// workspace. The workspace root declares its members as glob patterns in
// workspace.yml; each member directory carries a package.yml with the
// package name and current version.
package workspace

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	// RootManifest is the workspace manifest filename at the workspace root.
	RootManifest = "workspace.yml"
	// PackageManifest is the per-package manifest filename.
	PackageManifest = "package.yml"
)

// Package is one workspace member.
type Package struct {
	// Name is the package identifier, unique within the workspace. Names may
	// contain scope prefixes such as "@acme/client".
	Name string
	// Version is the package's current version string.
	Version string
	// Dir is the package directory relative to the workspace root.
	Dir string
}

// rootManifest mirrors workspace.yml.
type rootManifest struct {
	Packages []string `yaml:"packages"`
}

// packageManifest mirrors package.yml.
type packageManifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Discover resolves all workspace members under root. Member manifests are
// read concurrently; the result is ordered by package name. Duplicate names
// and manifests missing a name or version are errors.
func Discover(root string) ([]Package, error) {
	patterns, err := loadRootManifest(root)
	if err != nil {
		return nil, err
	}

	dirs, err := expandPatterns(root, patterns)
	if err != nil {
		return nil, err
	}

	packages := make([]Package, len(dirs))
	var g errgroup.Group
	for i, dir := range dirs {
		g.Go(func() error {
			pkg, err := readPackage(root, dir)
			if err != nil {
				return err
			}
			packages[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Name < packages[j].Name
	})

	seen := make(map[string]string, len(packages))
	for _, pkg := range packages {
		if prev, ok := seen[pkg.Name]; ok {
			return nil, fmt.Errorf("duplicate package name %q in %s and %s", pkg.Name, prev, pkg.Dir)
		}
		seen[pkg.Name] = pkg.Dir
	}

	return packages, nil
}

// Names returns the package names in workspace order.
func Names(packages []Package) []string {
	names := make([]string, len(packages))
	for i, pkg := range packages {
		names[i] = pkg.Name
	}
	return names
}

// loadRootManifest reads workspace.yml and returns its member glob patterns.
func loadRootManifest(root string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, RootManifest))
	if err != nil {
		return nil, fmt.Errorf("reading workspace manifest: %w", err)
	}

	var manifest rootManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", RootManifest, err)
	}
	if len(manifest.Packages) == 0 {
		return nil, fmt.Errorf("%s declares no packages", RootManifest)
	}

	return manifest.Packages, nil
}

// expandPatterns resolves member globs to directories containing a package
// manifest, preserving pattern order and de-duplicating matches.
func expandPatterns(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)

	var dirs []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, path.Join(pattern, PackageManifest))
		if err != nil {
			return nil, fmt.Errorf("expanding package pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			dir := path.Dir(match)
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}

	if len(dirs) == 0 {
		return nil, fmt.Errorf("no packages matched patterns %v", patterns)
	}

	return dirs, nil
}

// readPackage loads and validates one member manifest.
func readPackage(root, dir string) (Package, error) {
	manifestPath := filepath.Join(root, filepath.FromSlash(dir), PackageManifest)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return Package{}, fmt.Errorf("reading package manifest %s: %w", manifestPath, err)
	}

	var manifest packageManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return Package{}, fmt.Errorf("parsing %s: %w", manifestPath, err)
	}
	if manifest.Name == "" {
		return Package{}, fmt.Errorf("%s: missing package name", manifestPath)
	}
	if manifest.Version == "" {
		return Package{}, fmt.Errorf("%s: missing package version", manifestPath)
	}

	return Package{Name: manifest.Name, Version: manifest.Version, Dir: dir}, nil
}
