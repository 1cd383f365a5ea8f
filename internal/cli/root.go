// Package cli implements trainerbot-cli: init data signing and checking, the material
// registry and one-off grading runs against the configured grader
package cli

import (
	"github.com/spf13/cobra"

	"trainerbot/internal/core/version"
)

// RootCmd returns the trainerbot-cli command tree
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trainerbot-cli",
		Short:   "Tools for the trainer bot",
		Version: version.Info("trainerbot-cli").String(),
		Long: `trainerbot-cli signs and verifies Mini App init data, lists the material registry
and runs the grading pipeline from the terminal.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(signCmd())
	cmd.AddCommand(verifyCmd())
	cmd.AddCommand(materialsCmd())
	cmd.AddCommand(gradeCmd())

	return cmd
}
