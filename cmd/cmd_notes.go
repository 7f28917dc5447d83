package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zbiljic/semrel/pkg/release"
)

var notesCmd = &cobra.Command{
	Use: "notes",
	Aliases: []string{
		"n",
		"changelog",
	},
	Short:       "Generate release notes",
	Long:        `Generates the release notes for the commits made since the last release tag, grouped into the configured changelog sections.`,
	Annotations: map[string]string{"group": "main"},
	Args:        cobra.NoArgs,
	RunE:        runNotesE,
}

var notesFlags = notesOptions{
	Format: MarkdownFormat,
}

func notesAddFlags(cmd *cobra.Command) {
	addFormatFlag(cmd, &notesFlags.Format, "Output format (markdown, json, text)")
	addHistoryFlags(cmd, &notesFlags.History)
}

func init() {
	notesAddFlags(notesCmd)

	rootCmd.AddCommand(notesCmd)
}

type notesOptions struct {
	Format  OutputFormat
	History historyOptions
}

type notesResult struct {
	Version         string            `json:"version,omitempty"`
	Date            string            `json:"date"`
	BreakingChanges []release.Entry   `json:"breakingChanges"`
	Sections        []release.Section `json:"sections"`
}

func runNotesE(cmd *cobra.Command, args []string) error {
	workDir, err := setupGitWorkDir(notesFlags.History.Backend)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := evaluate(cmd.Context(), cfg, workDir, notesFlags.History)
	if err != nil {
		return err
	}

	nc := p.notesContext()
	nc.Date = time.Now()

	return writeNotes(cmd.OutOrStdout(), notesFlags.Format, nc, p.Changelog)
}

// writeNotes prints the changelog in the requested format.
func writeNotes(w io.Writer, format OutputFormat, nc release.NotesContext, c release.Changelog) error {
	switch format {
	case JSONFormat:
		return writeJSON(w, notesResult{
			Version:         nc.Version,
			Date:            nc.Date.Format(time.DateOnly),
			BreakingChanges: c.BreakingChanges,
			Sections:        c.Sections,
		})
	case TextFormat:
		if len(c.BreakingChanges) > 0 {
			if err := writeTextSection(w, "BREAKING CHANGES", c.BreakingChanges); err != nil {
				return err
			}
		}
		for _, s := range c.Sections {
			if err := writeTextSection(w, s.Title, s.Entries); err != nil {
				return err
			}
		}
		return nil
	default:
		return release.RenderMarkdown(w, nc, c)
	}
}

func writeTextSection(w io.Writer, title string, entries []release.Entry) error {
	if _, err := fmt.Fprintf(w, "%s:\n", title); err != nil {
		return err
	}
	for _, e := range entries {
		line := e.Subject
		if e.Scope != "" {
			line = e.Scope + ": " + line
		}
		if _, err := fmt.Fprintf(w, "  - %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
