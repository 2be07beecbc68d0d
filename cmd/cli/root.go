// Package cli implements the bomsight-admin command line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command of the `bomsight-admin` binary.
var rootCmd = &cobra.Command{
	Use:   "bomsight-admin",
	Short: "A CLI tool for operating the bomsight analytics service.",
	Long: `bomsight-admin is a command-line interface for offline work against a
fixture set: scoring metric files, validating fixture directories and
exporting the flattened hierarchy without running the HTTP service.`,
}

// Execute runs the CLI. Errors are printed and mapped to a non-zero exit.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
