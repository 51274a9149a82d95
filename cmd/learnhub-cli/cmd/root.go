package cmd

import (
	"os"

	"github.com/nfrund/learnhub/internal/logging"
	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "learnhub-cli",
	Short: "LearnHub CLI tool",
	Long: `LearnHub CLI is a command-line interface for running and inspecting a LearnHub site.

Available commands:
  seed           Create the demo course and its asset directories
  unlock         Reset the failed sign-in counter of an account
  leaderboard    Print one page of the points leaderboard
  scores         Print the quiz scores of a student

Use "learnhub-cli [command] --help" for more information about a specific command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.New("")
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of a running LearnHub server")
}
