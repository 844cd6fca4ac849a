// Package cli implements the changeset command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/changeset/internal/errors"
	"github.com/raveheart1/changeset/internal/gitutil"
	"github.com/raveheart1/changeset/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "changeset",
	Short: "Author changesets for multi-package workspaces",
	Long: `changeset records intent to release: which packages need a version bump,
at what severity, and a human-written summary of the change. Each authoring
session writes one or more uniquely named markdown files under .changeset/
that downstream release tooling consumes.`,
	Example: `  changeset init     # scaffold .changeset/ in the current workspace
  changeset add      # interactively author a changeset
  changeset status   # list pending changesets`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			gitutil.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "C", ".", "Workspace root directory")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// Execute runs the command tree and maps errors to process exit codes.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			errors.PrintError(cliErr)
			switch cliErr.Category {
			case errors.UserAbort:
				return ExitUserAbort
			case errors.Argument:
				return ExitInvalidArguments
			default:
				return ExitError
			}
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
