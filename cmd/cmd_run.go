package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/orochaa/go-clack/third_party/picocolors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zbiljic/semrel/internal/config"
	"github.com/zbiljic/semrel/internal/log"
	"github.com/zbiljic/semrel/pkg/export"
	"github.com/zbiljic/semrel/pkg/release"
)

var runCmd = &cobra.Command{
	Use: "run",
	Aliases: []string{
		"r",
		"release",
	},
	Short: "Run the configured release steps",
	Long: `Runs the configured plugins over the commits made since the last release tag:
commit-analyzer decides the release, release-notes-generator writes the notes,
and export-data publishes the decision to $GITHUB_OUTPUT. Plugins that publish
to external services are skipped.`,
	Annotations: map[string]string{"group": "main"},
	Args:        cobra.NoArgs,
	RunE:        runRunE,
}

var runFlags = runOptions{}

func runAddFlags(cmd *cobra.Command) {
	addHistoryFlags(cmd, &runFlags.History)
	cmd.Flags().BoolVarP(&runFlags.DryRun, "dry-run", "n", false, "Decide and print the release without writing any output files")
	cmd.Flags().StringVarP(&runFlags.NotesFile, "notes-file", "o", "", "Write the release notes to a file instead of stdout")
	cmd.Flags().StringVar(&runFlags.OutputFile, "output-file", "", "File to export the release decision to; defaults to $"+export.EnvGitHubOutput)
}

func init() {
	runAddFlags(runCmd)

	rootCmd.AddCommand(runCmd)
}

type runOptions struct {
	History    historyOptions
	DryRun     bool
	NotesFile  string
	OutputFile string
}

func runRunE(cmd *cobra.Command, args []string) error {
	logger := log.WithComponentFromContext(cmd.Context(), "run")

	workDir, err := setupGitWorkDir(runFlags.History.Backend)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	r := newReporter(cmd, false)

	r.Start("Analyzing commits")
	p, err := evaluate(cmd.Context(), cfg, workDir, runFlags.History)
	if err != nil {
		r.Stop("Failed to analyze commits", true)
		return err
	}
	r.Stop(fmt.Sprintf("Analyzed %d commit(s) since %s", len(p.History.Commits), lastTagLabel(p)), false)

	plugins := cfg.PluginList()

	if !lo.Contains(plugins, config.PluginCommitAnalyzer) {
		logger.Warn().Msg("commit-analyzer is not configured, no release will be made")
		p.Decision = release.NoRelease
		p.Next = nil
		p.NextTag = ""
	}

	for _, plugin := range plugins {
		switch plugin {
		case config.PluginCommitAnalyzer:
			if p.Decision.ShouldRelease {
				r.Info(fmt.Sprintf("Release type is %s, next version is %s", picocolors.Cyan(p.Decision.Level.String()), picocolors.Green(p.NextVersion())))
			} else {
				r.Info("There are no relevant changes, so no new version is released")
			}
		case config.PluginReleaseNotesGenerator:
			if !p.Decision.ShouldRelease {
				continue
			}
			if err := runWriteNotes(cmd, p); err != nil {
				return err
			}
		case config.PluginExportData:
			if err := runExport(cmd, p); err != nil {
				return err
			}
		default:
			logger.Info().Str("plugin", plugin).Msg("skipping external plugin")
		}
	}

	if p.Decision.ShouldRelease {
		r.Outro(fmt.Sprintf("%s Released %s", picocolors.Green("✔"), picocolors.Cyan(p.NextTag)))
	} else {
		r.Outro("No release")
	}

	return nil
}

func runWriteNotes(cmd *cobra.Command, p *pending) error {
	nc := p.notesContext()
	nc.Date = time.Now()

	if runFlags.NotesFile == "" || runFlags.DryRun {
		return release.RenderMarkdown(cmd.OutOrStdout(), nc, p.Changelog)
	}

	if err := os.MkdirAll(filepath.Dir(runFlags.NotesFile), 0o755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	f, err := os.Create(runFlags.NotesFile)
	if err != nil {
		return fmt.Errorf("failed to create notes file: %w", err)
	}
	defer f.Close()

	if err := release.RenderMarkdown(f, nc, p.Changelog); err != nil {
		return fmt.Errorf("failed to write notes file: %w", err)
	}

	log.FromContext(cmd.Context()).Info().Str("path", runFlags.NotesFile).Msg("release notes written")
	return nil
}

func runExport(cmd *cobra.Command, p *pending) error {
	logger := log.WithComponentFromContext(cmd.Context(), "export")

	data := exportData(p)
	path := export.Path(runFlags.OutputFile)

	if runFlags.DryRun {
		for _, kv := range data.Pairs() {
			logger.Info().Str("key", kv[0]).Str("value", kv[1]).Msg("dry run, not exported")
		}
		return nil
	}

	if path == "" {
		logger.Debug().Msg("no output file, skipping export")
		return nil
	}

	if err := export.Write(path, data); err != nil {
		return err
	}

	logger.Info().Str("path", path).Msg("release decision exported")
	return nil
}

func exportData(p *pending) export.Data {
	if !p.Decision.ShouldRelease {
		return export.Data{}
	}
	return export.Data{
		Published: true,
		Version:   p.NextVersion(),
		Tag:       p.NextTag,
		Level:     p.Decision.Level.String(),
	}
}
