package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/raveheart1/changeset/internal/changeset"
	"github.com/raveheart1/changeset/internal/config"
	"github.com/raveheart1/changeset/internal/errors"
	"github.com/raveheart1/changeset/internal/gitutil"
	"github.com/raveheart1/changeset/internal/output"
	"github.com/raveheart1/changeset/internal/prompt"
	"github.com/raveheart1/changeset/internal/workspace"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Interactively author a new changeset",
	Long: `Walk through an interactive session that resolves which packages need a
version bump and at what severity, collects a change summary (or categorized
descriptions), and writes the result as .changeset/<id>.md.

Packages that differ from the base branch are pre-grouped as "changed" in the
selection menu. Change detection needs a git repository; without one, all
packages are simply listed as unchanged.`,
	Example: `  changeset add
  changeset add --no-categories
  changeset add -C ../my-workspace`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().Bool("no-categories", false, "Skip the category-of-change selection")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cwd, _ := cmd.Flags().GetString("cwd")
	noCategories, _ := cmd.Flags().GetBool("no-categories")

	cfg, err := config.Load(cwd)
	if err != nil {
		return errors.Wrap(err, errors.Configuration,
			"check .changeset/config.yml syntax",
			"run 'changeset init --force' to regenerate the config")
	}

	out := cmd.OutOrStdout()

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	spin.Suffix = " scanning workspace..."
	spin.Start()

	packages, err := workspace.Discover(cwd)
	if err != nil {
		spin.Stop()
		return errors.Wrap(err, errors.Workspace,
			"make sure workspace.yml exists at the workspace root",
			"each package directory needs a package.yml with name and version")
	}

	spin.Suffix = " detecting changed packages..."
	changed, ok := gitutil.ChangedPackages(cwd, cfg.BaseBranch, packages)
	spin.Stop()

	if !ok {
		output.PrintInfo(out, fmt.Sprintf("could not diff against %q, listing all packages as unchanged", cfg.BaseBranch))
	}

	builder := &changeset.Builder{
		Prompter:      prompt.NewSurveyPrompter(),
		Out:           out,
		Packages:      packages,
		Changed:       changed,
		AskCategories: cfg.AskCategories && !noCategories,
	}

	changesets, err := builder.Run()
	if err != nil {
		return err
	}

	dir := filepath.Join(cwd, cfg.ChangesetDir)
	opts := changeset.WriteOptions{Dir: dir, Format: cfg.FormatOptions()}

	for i := range changesets {
		id, err := changeset.Write(&changesets[i], opts)
		if err != nil {
			return errors.Wrap(err, errors.Runtime)
		}
		output.PrintSuccess(out, fmt.Sprintf("wrote %s", filepath.Join(cfg.ChangesetDir, id+".md")))
	}

	return nil
}
