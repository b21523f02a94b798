// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/greeting-action/internal/actions"
	"github.com/naka-gawa/greeting-action/internal/gateway"
	"github.com/naka-gawa/greeting-action/internal/usecase"
)

// inputNames lists the configuration inputs of the action. Each is
// exposed as a flag and falls back to its INPUT_* environment variable,
// so the binary behaves identically on a runner and on a workstation.
var inputNames = []string{"who-to-greet", "include-time", "message-prefix", "github-token"}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executes one action run: greet, timestamp, fetch stats, publish outputs",
	Long: `Executes a single action run. Inputs are resolved from the command flags
first and the INPUT_* environment variables second. Outputs are appended to the
GITHUB_OUTPUT file when running on a GitHub Actions runner, and logged to the
console otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		// Non-empty flags form the structured parameter store; the host
		// falls back to the INPUT_* environment for the rest.
		inputs := make(map[string]string)
		for _, name := range inputNames {
			if value, _ := cmd.Flags().GetString(name); value != "" {
				inputs[name] = value
			}
		}
		host := actions.NewHost(inputs)

		// Inject dependencies and run the main business logic. The
		// gateway exists only when a token does; without one the run
		// skips the fetch entirely.
		var fetcher gateway.Fetcher
		if token := host.GetInput("github-token"); token != "" {
			fetcher = gateway.NewGitHubGateway(token, logger)
		}
		runner := usecase.NewRunner(host, fetcher, logger)

		runner.Run(ctx)
		if host.Failed() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("who-to-greet", "", "Name of the person or thing to greet (default \"World\")")
	runCmd.Flags().String("include-time", "", "Set to true/1/yes to also publish the current time output")
	runCmd.Flags().String("message-prefix", "", "Prefix for the greeting message (default \"Hello\")")
	runCmd.Flags().String("github-token", "", "GitHub token enabling the repository stats fetch")
}
