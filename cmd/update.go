// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/readme-tools/update-repo-info/internal/config"
	"github.com/readme-tools/update-repo-info/internal/gateway"
	"github.com/readme-tools/update-repo-info/internal/publisher"
	"github.com/readme-tools/update-repo-info/internal/usecase"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Updates repository link annotations in the README",
	Long: `Reads the README, fetches star counts and last-push dates for every GitHub
repository link it contains, rewrites the annotations, and publishes the
change either directly to the base branch or through a pull request,
depending on UPDATE_MODE.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}

		readmeFile := filepath.Join(cfg.RepoDir, cfg.ReadmePath)
		original, err := os.ReadFile(readmeFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", readmeFile, err)
			os.Exit(1)
		}

		// Inject dependencies and run the pipeline.
		githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		updater := usecase.NewUpdater(githubGateway, logger)
		updated, changedLinks := updater.Update(ctx, string(original))

		if updated == string(original) {
			logger.Println("No changes made to README.")
			return
		}

		var owner, repoName string
		if cfg.Mode == config.ModePR {
			owner, repoName, err = cfg.OwnerRepo()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
				os.Exit(1)
			}
		}

		repo, err := git.PlainOpen(cfg.RepoDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open git repository at %s: %v\n", cfg.RepoDir, err)
			os.Exit(1)
		}

		pub := publisher.New(repo, githubGateway, cfg.Token, logger)
		err = pub.Publish(ctx, publisher.Request{
			ReadmePath:   cfg.ReadmePath,
			Original:     string(original),
			Updated:      updated,
			Mode:         publisher.Mode(cfg.Mode),
			BaseBranch:   cfg.BaseBranch,
			Owner:        owner,
			Repo:         repoName,
			UpdatedLinks: changedLinks,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to publish changes: %v\n", err)
			os.Exit(1)
		}

		logger.Println("Updated repo links:")
		for _, link := range changedLinks {
			logger.Printf("  %s", link)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
