// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "greeting-action",
	Short: "A starter GitHub Action that greets and reports repository stats.",
	Long: `greeting-action is a starter template for a GitHub Action written in Go.
It formats a greeting from its configuration inputs, optionally timestamps it,
optionally fetches repository metadata from the GitHub API, and publishes the
results as action outputs and a step summary.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
