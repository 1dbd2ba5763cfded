// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Update modes accepted in UPDATE_MODE.
const (
	ModeDirect = "direct"
	ModePR     = "pr"
)

// Config carries everything the pipeline needs for one run. It is an
// explicit value handed to the entry point rather than ambient global
// state, so tests can inject fixtures.
type Config struct {
	Token      string // GITHUB_TOKEN, required
	Mode       string // UPDATE_MODE, direct or pr
	BaseBranch string // BASE_BRANCH
	ReadmePath string // README_PATH, repository-relative
	RepoDir    string // REPO_DIR, path of the checked-out working copy
	Repository string // GITHUB_REPOSITORY, owner/repo; required in pr mode
}

// Load reads the configuration from the environment and validates it.
// A missing token is a fatal configuration error, reported before the
// pipeline ever runs.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("UPDATE_MODE", ModeDirect)
	v.SetDefault("BASE_BRANCH", "main")
	v.SetDefault("README_PATH", "README.md")
	v.SetDefault("REPO_DIR", ".")

	cfg := Config{
		Token:      v.GetString("GITHUB_TOKEN"),
		Mode:       v.GetString("UPDATE_MODE"),
		BaseBranch: v.GetString("BASE_BRANCH"),
		ReadmePath: v.GetString("README_PATH"),
		RepoDir:    v.GetString("REPO_DIR"),
		Repository: v.GetString("GITHUB_REPOSITORY"),
	}

	if cfg.Token == "" {
		return Config{}, fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}
	if cfg.Mode != ModeDirect && cfg.Mode != ModePR {
		return Config{}, fmt.Errorf("UPDATE_MODE must be %q or %q, got %q", ModeDirect, ModePR, cfg.Mode)
	}
	if cfg.Mode == ModePR && cfg.Repository == "" {
		return Config{}, fmt.Errorf("GITHUB_REPOSITORY must be set in pr mode")
	}
	return cfg, nil
}

// OwnerRepo splits Repository into its owner and name parts.
func (c Config) OwnerRepo() (string, string, error) {
	owner, repo, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("GITHUB_REPOSITORY must be in owner/repo form, got %q", c.Repository)
	}
	return owner, repo, nil
}
