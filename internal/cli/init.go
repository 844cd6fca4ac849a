package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raveheart1/changeset/internal/config"
	"github.com/raveheart1/changeset/internal/errors"
	"github.com/raveheart1/changeset/internal/output"
)

// changesetReadme explains the directory to people browsing the repository.
const changesetReadme = `# Changesets

This directory holds pending changesets: small markdown files recording which
packages need a version bump and why. They are created with 'changeset add'
and consumed by the release tooling when versions are published.

config.yml configures the authoring flow; see the comments inside it.
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold the .changeset directory",
	Long: `Create the .changeset directory with a commented config.yml and a README
explaining the directory to other contributors.

An existing config.yml is never overwritten unless --force is given.`,
	Example: `  changeset init
  changeset init --force   # regenerate config.yml`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config.yml")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, _ := cmd.Flags().GetString("cwd")
	force, _ := cmd.Flags().GetBool("force")

	out := cmd.OutOrStdout()
	dir := filepath.Join(cwd, ".changeset")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating .changeset directory")
	}

	configPath := filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil && !force {
		output.PrintInfo(out, fmt.Sprintf("%s already exists, leaving it untouched (use --force to overwrite)", configPath))
	} else {
		if err := os.WriteFile(configPath, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "writing config.yml")
		}
		output.PrintSuccess(out, fmt.Sprintf("wrote %s", configPath))
	}

	readmePath := filepath.Join(dir, "README.md")
	if _, err := os.Stat(readmePath); os.IsNotExist(err) {
		if err := os.WriteFile(readmePath, []byte(changesetReadme), 0o644); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "writing README.md")
		}
		output.PrintSuccess(out, fmt.Sprintf("wrote %s", readmePath))
	}

	return nil
}
