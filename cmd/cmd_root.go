package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/orochaa/go-clack/prompts"
	"github.com/spf13/cobra"

	"github.com/zbiljic/semrel/internal/buildinfo"
	"github.com/zbiljic/semrel/internal/log"
	"github.com/zbiljic/semrel/pkg/history"
	"github.com/zbiljic/semrel/pkg/version"
)

// AppName - the name of the application.
const AppName = "semrel"

var rootCmd = &cobra.Command{
	Use:   AppName,
	Short: "Decide the next release from conventional commits",
	Long: `Analyzes the conventional commits made since the last release tag, decides
whether a release is due and which version it gets, and generates the
release notes grouped into changelog sections.`,
	Version: version.Info{
		Version: buildinfo.Version,
		Commit:  buildinfo.GitCommit,
		BuiltBy: buildinfo.BuiltBy,
	}.String(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
		logger := log.New(log.Config{
			Level:   rootFlags.LogLevel,
			Output:  cmd.ErrOrStderr(),
			Console: !isNotTerminal,
		})
		cmd.SetContext(logger.WithContext(ctx))
	},
	RunE:          runRootE,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var rootFlags = rootOptions{}

type rootOptions struct {
	ConfigPath string
	LogLevel   string
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlags.ConfigPath, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&rootFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $"+log.EnvLevel)

	// the default action is analyze, so it takes the same flags
	analyzeAddFlags(rootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if cmd, err := rootCmd.ExecuteC(); err != nil {
		if strings.Contains(err.Error(), "arg(s)") || strings.Contains(err.Error(), "usage") {
			cmd.Usage() //nolint:errcheck
		}

		var started bool
		if ctx := cmd.Context(); ctx != nil {
			started, _ = ctx.Value(ctxKeyClackPromptStarted{}).(bool)
		}
		if started {
			prompts.ExitOnError(err)
		} else {
			cobra.CheckErr(err)
		}
	}
}

func runRootE(cmd *cobra.Command, args []string) error {
	switch {
	case isGitRepo(analyzeFlags.History.Backend):
		return runAnalyzeE(cmd, args)
	default:
		cmd.Usage() //nolint:errcheck
		return nil
	}
}

func isGitRepo(backend history.Backend) bool {
	workDir, err := setupGitWorkDir(backend)
	return err == nil && workDir != ""
}
