package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/zbiljic/semrel/internal/config"
	"github.com/zbiljic/semrel/pkg/history"
)

type (
	ctxKeyClackPromptStarted struct{}
)

func injectIntoCommandContextWithKey[K, V comparable](cmd *cobra.Command, key K, value V) {
	ctx := cmd.Context()
	ctx = context.WithValue(ctx, key, value)
	cmd.SetContext(ctx)
}

// setupGitWorkDir validates and returns the git working directory, found
// with the same backend that reads the history.
func setupGitWorkDir(backend history.Backend) (string, error) {
	workDir, err := history.WorkingTreeDir(backend, getWd())
	if err != nil {
		return "", errors.New("The current directory must be a Git repository") //nolint:staticcheck
	}
	return workDir, nil
}

// loadConfig loads the configuration named by the --config flag, or the
// first one found on the search paths.
func loadConfig() (*config.Config, error) {
	return config.Load(rootFlags.ConfigPath)
}
