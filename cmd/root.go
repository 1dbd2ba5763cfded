// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "update-repo-info",
	Short: "A CLI tool to annotate README repository links with GitHub metadata.",
	Long: `update-repo-info scans a README for GitHub repository links, fetches each
repository's star count and last-push date, rewrites the trailing annotations
in place, and publishes the result as a direct commit or a pull request.
It is intended to run inside a CI workflow against the checked-out repo.`,
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
