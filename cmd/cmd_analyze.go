package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/orochaa/go-clack/third_party/picocolors"
	"github.com/spf13/cobra"

	"github.com/zbiljic/semrel/pkg/commit"
	"github.com/zbiljic/semrel/pkg/release"
)

var analyzeCmd = &cobra.Command{
	Use: "analyze",
	Aliases: []string{
		"a",
		"next",
	},
	Short:       "Decide whether a release is due",
	Long:        `Reads the commits made since the last release tag and prints the release level, whether a release should be made, and the next version and tag.`,
	Annotations: map[string]string{"group": "main"},
	Args:        cobra.NoArgs,
	RunE:        runAnalyzeE,
}

var analyzeFlags = analyzeOptions{
	Format: TextFormat,
}

func analyzeAddFlags(cmd *cobra.Command) {
	addFormatFlag(cmd, &analyzeFlags.Format, "Output format (text, json)")
	addHistoryFlags(cmd, &analyzeFlags.History)
}

func init() {
	analyzeAddFlags(analyzeCmd)

	rootCmd.AddCommand(analyzeCmd)
}

type analyzeOptions struct {
	Format  OutputFormat
	History historyOptions
}

// analyzeResult is the machine readable form of a release decision.
type analyzeResult struct {
	release.Decision
	Branch      string `json:"branch"`
	Eligible    bool   `json:"eligible"`
	LastTag     string `json:"lastTag,omitempty"`
	NextVersion string `json:"nextVersion,omitempty"`
	NextTag     string `json:"nextTag,omitempty"`
	Commits     int    `json:"commits"`
}

func newAnalyzeResult(p *pending) analyzeResult {
	return analyzeResult{
		Decision:    p.Decision,
		Branch:      p.Branch,
		Eligible:    p.Eligible,
		LastTag:     p.History.LastTag,
		NextVersion: p.NextVersion(),
		NextTag:     p.NextTag,
		Commits:     len(p.History.Commits),
	}
}

func runAnalyzeE(cmd *cobra.Command, args []string) error {
	if analyzeFlags.Format == MarkdownFormat {
		return fmt.Errorf("unsupported format for analyze: %s", analyzeFlags.Format)
	}

	workDir, err := setupGitWorkDir(analyzeFlags.History.Backend)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	r := newReporter(cmd, analyzeFlags.Format == JSONFormat)

	r.Start("Analyzing commits")
	p, err := evaluate(cmd.Context(), cfg, workDir, analyzeFlags.History)
	if err != nil {
		r.Stop("Failed to analyze commits", true)
		return err
	}
	r.Stop(fmt.Sprintf("Analyzed %d commit(s) since %s", len(p.History.Commits), lastTagLabel(p)), false)

	if !p.Eligible {
		r.Note(fmt.Sprintf("Branch %s is not a release branch (%s)", picocolors.Cyan(p.Branch), strings.Join(cfg.Branches, ", ")))
	}

	if len(p.History.Commits) > 0 {
		r.List("Pending commits:", slice.Map(p.History.Commits, func(_ int, c commit.Record) string {
			return describeCommit(c, cfg.ReleaseRuleSet())
		}))
	}

	if analyzeFlags.Format == JSONFormat {
		return writeJSON(cmd.OutOrStdout(), newAnalyzeResult(p))
	}

	if err := printDecision(cmd.OutOrStdout(), p); err != nil {
		return err
	}

	if p.Decision.ShouldRelease {
		r.Outro(fmt.Sprintf("%s Next release: %s", picocolors.Green("✔"), picocolors.Cyan(p.NextTag)))
	} else {
		r.Outro("No release")
	}

	return nil
}

func lastTagLabel(p *pending) string {
	if p.History.LastTag == "" {
		return "the first commit"
	}
	return p.History.LastTag
}

func describeCommit(c commit.Record, rules release.ReleaseRules) string {
	header := c.Header()
	if c.Type == "" {
		header = c.Subject
	}
	return fmt.Sprintf("%s %s %s", picocolors.Dim(c.ShortHash()), header, picocolors.Gray("["+rules.LevelFor(c).String()+"]"))
}

func printDecision(w io.Writer, p *pending) error {
	_, err := fmt.Fprintf(w,
		"branch: %s\neligible: %t\nlast tag: %s\ncommits: %d\nlevel: %s\nrelease: %t\n",
		p.Branch,
		p.Eligible,
		p.History.LastTag,
		len(p.History.Commits),
		p.Decision.Level,
		p.Decision.ShouldRelease,
	)
	if err != nil {
		return err
	}

	if p.Decision.ShouldRelease {
		_, err = fmt.Fprintf(w, "next version: %s\nnext tag: %s\n", p.NextVersion(), p.NextTag)
	}
	return err
}
