package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raveheart1/changeset/internal/changeset"
	"github.com/raveheart1/changeset/internal/config"
	"github.com/raveheart1/changeset/internal/errors"
	"github.com/raveheart1/changeset/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List pending changesets",
	Long: `Parse every changeset file under the changeset directory and show the
pending package bumps grouped by severity (major, then minor, then patch).`,
	Example: `  changeset status
  changeset status --verbose   # include summaries`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolP("verbose", "v", false, "Include changeset summaries")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cwd, _ := cmd.Flags().GetString("cwd")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(cwd)
	if err != nil {
		return errors.Wrap(err, errors.Configuration)
	}

	dir := filepath.Join(cwd, cfg.ChangesetDir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		output.PrintInfo(cmd.OutOrStdout(), "no changeset directory, run 'changeset init' first")
		return nil
	}
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "reading changeset directory")
	}

	out := cmd.OutOrStdout()

	// bumps collects the highest pending bump per package across all files.
	bumps := make(map[string]changeset.Bump)
	var parsed int

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || strings.EqualFold(name, "README.md") {
			continue
		}

		cs, err := changeset.ParseFile(filepath.Join(dir, name))
		if err != nil {
			return errors.Wrap(err, errors.Runtime,
				fmt.Sprintf("fix or remove the malformed changeset file %s", name))
		}
		parsed++

		for _, rel := range cs.Releases {
			if current, ok := bumps[rel.Name]; !ok || bumpRank(rel.Type) < bumpRank(current) {
				bumps[rel.Name] = rel.Type
			}
		}

		if verbose {
			printChangeset(out, name, cs)
		}
	}

	if parsed == 0 {
		output.PrintInfo(out, "no pending changesets")
		return nil
	}

	if !verbose {
		printBumpSummary(out, bumps)
	}
	output.PrintInfo(out, fmt.Sprintf("%d pending changeset(s)", parsed))
	return nil
}

// printBumpSummary prints packages grouped by severity in fixed order.
func printBumpSummary(out io.Writer, bumps map[string]changeset.Bump) {
	for _, bump := range changeset.BumpOrder() {
		var names []string
		for name, b := range bumps {
			if b == bump {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)

		label := output.BumpColor(string(bump)).Sprint(bump)
		for _, name := range names {
			fmt.Fprintf(out, "  %s  %s\n", label, name)
		}
	}
}

// printChangeset prints one changeset with its summary or category lines.
func printChangeset(out io.Writer, filename string, cs *changeset.Changeset) {
	output.PrintHeader(out, strings.TrimSuffix(filename, ".md"))
	for _, rel := range cs.Releases {
		label := output.BumpColor(string(rel.Type)).Sprint(rel.Type)
		fmt.Fprintf(out, "  %s  %s\n", label, rel.Name)
	}
	for _, cat := range cs.Categories {
		fmt.Fprintf(out, "  [ %s ] %s\n", cat.Category, cat.Description)
	}
	if cs.Summary != "" {
		fmt.Fprintf(out, "  %s\n", cs.Summary)
	}
	fmt.Fprintln(out)
}

// bumpRank orders severities for the per-package rollup; lower wins.
func bumpRank(b changeset.Bump) int {
	for i, candidate := range changeset.BumpOrder() {
		if candidate == b {
			return i
		}
	}
	return len(changeset.BumpOrder())
}
