package changeset

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raveheart1/changeset/internal/errors"
	"github.com/raveheart1/changeset/internal/output"
	"github.com/raveheart1/changeset/internal/prompt"
	"github.com/raveheart1/changeset/internal/workspace"
)

// editorSeed is the instructional placeholder shown when the summary is
// collected through an external editor. Comment lines are stripped from the
// result.
const editorSeed = "\n\n" +
	"# Please enter a summary for your changes.\n" +
	"# Lines starting with '#' will be ignored.\n"

// summaryRetryPrompts are asked in order when the summary keeps coming back
// empty; the last one repeats.
var summaryRetryPrompts = []string{
	"A summary is required for the changelog, please enter one",
	"A summary is required. Please enter one now",
}

// Builder resolves release intent for a workspace into one or more Changeset
// records through an interactive prompt session. Each invocation owns its
// accumulation state; a Builder is not reused across sessions.
type Builder struct {
	// Prompter supplies all interactive input.
	Prompter prompt.Prompter
	// Out receives informational notices (auto-assigned bumps, fallbacks).
	Out io.Writer
	// Packages is the full workspace package set, in workspace order.
	Packages []workspace.Package
	// Changed pre-marks package names known to differ from the base branch;
	// they are presented as their own group in the selection menu.
	Changed []string
	// AskCategories enables the optional category-of-change workflow for
	// multi-package workspaces.
	AskCategories bool
}

// Run executes the interactive session and returns the resolved changesets
// in the order they should be serialized.
func (b *Builder) Run() ([]Changeset, error) {
	if len(b.Packages) == 0 {
		return nil, errors.NewWorkspaceError("the workspace has no packages",
			"check the packages patterns in workspace.yml")
	}
	if b.Out == nil {
		b.Out = os.Stdout
	}

	if len(b.Packages) == 1 {
		return b.runSingle()
	}
	return b.runMulti()
}

// runSingle is the single-package workspace path: one severity question, the
// first-major guard, one changeset, one summary.
func (b *Builder) runSingle() ([]Changeset, error) {
	pkg := b.Packages[0]

	choice, err := b.Prompter.Select(
		fmt.Sprintf("What kind of change is this for %s?", pkg.Name),
		[]string{string(BumpPatch), string(BumpMinor), string(BumpMajor)},
	)
	if err != nil {
		return nil, err
	}

	bump := Bump(choice)
	if bump == BumpMajor && isPreMajor(pkg.Version) {
		ok, err := b.confirmFirstMajor(pkg)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.NewUserAbortError(
				fmt.Sprintf("first major release of %s declined, no changeset created", pkg.Name))
		}
	}

	cs := Changeset{Releases: []Release{{Name: pkg.Name, Type: bump}}}
	if err := b.collectSummary(&cs); err != nil {
		return nil, err
	}
	return []Changeset{cs}, nil
}

// runMulti is the multi-package workspace path: candidate selection,
// optional categories, severity elimination, then fan-out or a single
// summarized changeset.
func (b *Builder) runMulti() ([]Changeset, error) {
	candidates, err := b.selectPackages()
	if err != nil {
		return nil, err
	}

	categories, err := b.selectCategories()
	if err != nil {
		return nil, err
	}

	releases, err := b.resolveBumps(candidates)
	if err != nil {
		return nil, err
	}

	if len(categories) > 0 {
		return b.fanOutCategories(releases, categories)
	}

	cs := Changeset{Releases: releases}
	if err := b.collectSummary(&cs); err != nil {
		return nil, err
	}
	return []Changeset{cs}, nil
}

// selectPackages asks which packages to release, presenting changed and
// unchanged packages as separate groups. An empty selection re-prompts.
func (b *Builder) selectPackages() ([]workspace.Package, error) {
	changedSet := make(map[string]bool, len(b.Changed))
	for _, name := range b.Changed {
		changedSet[name] = true
	}

	var changed, unchanged []prompt.Option
	for _, pkg := range b.Packages {
		opt := prompt.Option{Key: pkg.Name, Label: pkg.Name}
		if changedSet[pkg.Name] {
			changed = append(changed, opt)
		} else {
			unchanged = append(unchanged, opt)
		}
	}

	var groups []prompt.Group
	if len(changed) > 0 {
		groups = append(groups, prompt.Group{Name: "changed packages", Options: changed})
	}
	if len(unchanged) > 0 {
		groups = append(groups, prompt.Group{Name: "unchanged packages", Options: unchanged})
	}

	formatSelected := func(keys []string) string {
		return fmt.Sprintf("releasing: %s", strings.Join(keys, ", "))
	}

	for {
		keys, err := b.Prompter.MultiSelect("Which packages would you like to include?", groups, formatSelected)
		if err != nil {
			return nil, err
		}
		if len(keys) > 0 {
			return b.packagesByName(keys), nil
		}
		output.PrintWarning(b.Out, "You must select at least one package to release")
	}
}

// selectCategories runs the optional category-of-change selection. An empty
// answer skips the workflow for the whole session.
func (b *Builder) selectCategories() ([]string, error) {
	if !b.AskCategories {
		return nil, nil
	}

	options := make([]prompt.Option, len(CategoryCatalog))
	for i, label := range CategoryCatalog {
		options[i] = prompt.Option{Key: label, Label: label}
	}
	groups := []prompt.Group{{Name: "categories", Options: options}}

	keys, err := b.Prompter.MultiSelect(
		"What kind of change are you making? (leave empty to write a single summary)", groups, nil)
	if err != nil {
		return nil, err
	}

	// Preserve catalog order regardless of selection order.
	selected := make(map[string]bool, len(keys))
	for _, key := range keys {
		selected[key] = true
	}
	var ordered []string
	for _, label := range CategoryCatalog {
		if selected[label] {
			ordered = append(ordered, label)
		}
	}
	return ordered, nil
}

// resolveBumps assigns a severity to every candidate by successive
// elimination: a major round, a minor round over the remainder, then an
// automatic patch assignment for whatever is left. Each candidate ends up in
// exactly one group.
func (b *Builder) resolveBumps(candidates []workspace.Package) ([]Release, error) {
	remaining := candidates
	var releases []Release

	picked, err := b.askBumpRound(BumpMajor, remaining)
	if err != nil {
		return nil, err
	}
	for _, pkg := range picked {
		if isPreMajor(pkg.Version) {
			ok, err := b.confirmFirstMajor(pkg)
			if err != nil {
				return nil, err
			}
			if !ok {
				// Declined packages stay in the working set and fall through
				// to the minor and patch rounds.
				output.PrintInfo(b.Out, fmt.Sprintf("%s kept out of the major bump", pkg.Name))
				continue
			}
		}
		releases = append(releases, Release{Name: pkg.Name, Type: BumpMajor})
		remaining = removePackage(remaining, pkg.Name)
	}

	if len(remaining) > 0 {
		picked, err = b.askBumpRound(BumpMinor, remaining)
		if err != nil {
			return nil, err
		}
		for _, pkg := range picked {
			releases = append(releases, Release{Name: pkg.Name, Type: BumpMinor})
			remaining = removePackage(remaining, pkg.Name)
		}
	}

	if len(remaining) > 0 {
		names := workspace.Names(remaining)
		output.PrintInfo(b.Out, fmt.Sprintf("patch bump assumed for: %s", strings.Join(names, ", ")))
		for _, pkg := range remaining {
			releases = append(releases, Release{Name: pkg.Name, Type: BumpPatch})
		}
	}

	return releases, nil
}

// askBumpRound asks which of the remaining packages need the given bump,
// each option prefixed by the package's current version. An empty selection
// is valid.
func (b *Builder) askBumpRound(bump Bump, remaining []workspace.Package) ([]workspace.Package, error) {
	options := make([]prompt.Option, len(remaining))
	for i, pkg := range remaining {
		options[i] = prompt.Option{
			Key:   pkg.Name,
			Label: fmt.Sprintf("%s %s", pkg.Version, pkg.Name),
		}
	}
	groups := []prompt.Group{{Name: "packages", Options: options}}

	keys, err := b.Prompter.MultiSelect(
		fmt.Sprintf("Which packages should have a %s bump?", bump), groups, nil)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(keys))
	for _, key := range keys {
		selected[key] = true
	}
	var picked []workspace.Package
	for _, pkg := range remaining {
		if selected[pkg.Name] {
			picked = append(picked, pkg)
		}
	}
	return picked, nil
}

// fanOutCategories collects categorized descriptions for the resolved
// releases, either shared per severity group or individually per release.
func (b *Builder) fanOutCategories(releases []Release, labels []string) ([]Changeset, error) {
	reuse, err := b.Prompter.Confirm(
		"Reuse the same message for every package with the same bump type?", true)
	if err != nil {
		return nil, err
	}

	if reuse {
		cs := Changeset{Releases: releases, Confirmed: true}
		for _, bump := range BumpOrder() {
			group := releaseNames(releases, bump)
			if len(group) == 0 {
				continue
			}
			for _, label := range labels {
				kind := KindTitle(label)
				desc, err := b.Prompter.Input(
					fmt.Sprintf("%s changes for the %s bump (%s):", kind, bump, strings.Join(group, ", ")))
				if err != nil {
					return nil, err
				}
				cs.Categories = append(cs.Categories, CategoryOfChange{
					Category:    kind,
					Description: strings.TrimSpace(desc),
					Bump:        bump,
				})
			}
		}
		return []Changeset{cs}, nil
	}

	changesets := make([]Changeset, 0, len(releases))
	for _, rel := range releases {
		cs := Changeset{Releases: []Release{rel}, Confirmed: true}
		for _, label := range labels {
			kind := KindTitle(label)
			desc, err := b.Prompter.Input(
				fmt.Sprintf("%s changes for %s (%s bump):", kind, rel.Name, rel.Type))
			if err != nil {
				return nil, err
			}
			cs.Categories = append(cs.Categories, CategoryOfChange{
				Category:    kind,
				Description: strings.TrimSpace(desc),
			})
		}
		changesets = append(changesets, cs)
	}
	return changesets, nil
}

// collectSummary runs the summary sub-protocol: a free-text question, then
// an external editor on an empty answer, then an insistent retry loop. A
// finalized changeset never has an empty summary.
func (b *Builder) collectSummary(cs *Changeset) error {
	answer, err := b.Prompter.Input("Please enter a summary for this change (this will be in the changelogs)")
	if err != nil {
		return err
	}
	if answer = strings.TrimSpace(answer); answer != "" {
		cs.Summary = answer
		return nil
	}

	text, err := b.Prompter.InputWithEditor(editorSeed)
	if err != nil {
		output.PrintInfo(b.Out, "external editor unavailable, falling back to the inline prompt")
	} else if cleaned := stripCommentLines(text); cleaned != "" {
		cs.Summary = cleaned
		cs.Confirmed = true
		return nil
	}

	for attempt := 0; ; attempt++ {
		msg := summaryRetryPrompts[min(attempt, len(summaryRetryPrompts)-1)]
		answer, err := b.Prompter.Input(msg)
		if err != nil {
			return err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			cs.Summary = answer
			return nil
		}
	}
}

// confirmFirstMajor guards major bumps on packages still below 1.0.0.
func (b *Builder) confirmFirstMajor(pkg workspace.Package) (bool, error) {
	return b.Prompter.Confirm(
		fmt.Sprintf("%s is at %s. A major bump publishes its first major release. Continue?",
			pkg.Name, pkg.Version),
		false)
}

// packagesByName maps selected names back to packages, preserving workspace
// order.
func (b *Builder) packagesByName(names []string) []workspace.Package {
	selected := make(map[string]bool, len(names))
	for _, name := range names {
		selected[name] = true
	}
	var out []workspace.Package
	for _, pkg := range b.Packages {
		if selected[pkg.Name] {
			out = append(out, pkg)
		}
	}
	return out
}

// isPreMajor reports whether a version is below 1.0.0.
func isPreMajor(version string) bool {
	v := strings.TrimPrefix(version, "v")
	major, _, _ := strings.Cut(v, ".")
	return major == "0"
}

// removePackage returns the working set without the named package.
func removePackage(packages []workspace.Package, name string) []workspace.Package {
	out := make([]workspace.Package, 0, len(packages))
	for _, pkg := range packages {
		if pkg.Name != name {
			out = append(out, pkg)
		}
	}
	return out
}

// releaseNames returns the names of releases with the given bump.
func releaseNames(releases []Release, bump Bump) []string {
	var names []string
	for _, rel := range releases {
		if rel.Type == bump {
			names = append(names, rel.Name)
		}
	}
	return names
}

// stripCommentLines removes '#'-prefixed lines from editor output and trims
// surrounding whitespace.
func stripCommentLines(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
