package cmd

import (
	"context"
	"os"

	"github.com/coreos/go-semver/semver"

	"github.com/zbiljic/semrel/internal/config"
	"github.com/zbiljic/semrel/internal/log"
	"github.com/zbiljic/semrel/pkg/history"
	"github.com/zbiljic/semrel/pkg/release"
	"github.com/zbiljic/semrel/pkg/version"
)

// pending is the evaluated state of the commits waiting for a release.
type pending struct {
	Config    *config.Config
	Format    *version.Format
	History   *history.Result
	Branch    string
	Eligible  bool
	Decision  release.Decision
	Changelog release.Changelog
	Next      *semver.Version
	NextTag   string
}

// resolveBranch picks the branch to evaluate: the explicit one, the checked
// out one, or the one reported by GitHub Actions for a detached HEAD.
func resolveBranch(explicit, checkedOut string) string {
	if explicit != "" {
		return explicit
	}
	if checkedOut != "" {
		return checkedOut
	}
	if os.Getenv("GITHUB_REF_TYPE") == "branch" {
		return os.Getenv("GITHUB_REF_NAME")
	}
	return ""
}

// evaluate reads the history of workDir and computes the release decision
// and changelog.
func evaluate(ctx context.Context, cfg *config.Config, workDir string, opts historyOptions) (*pending, error) {
	logger := log.WithComponentFromContext(ctx, "pipeline")

	format, err := cfg.Format()
	if err != nil {
		return nil, err
	}

	reader, err := history.New(opts.Backend, workDir, format)
	if err != nil {
		return nil, err
	}

	res, err := reader.Read(ctx)
	if err != nil {
		return nil, err
	}

	p := &pending{
		Config:  cfg,
		Format:  format,
		History: res,
		Branch:  resolveBranch(opts.Branch, res.Branch),
	}
	p.Eligible = cfg.BranchAllowed(p.Branch)

	for _, typ := range release.DuplicateReleaseTypes(cfg.ReleaseRuleList()) {
		logger.Debug().Str("type", typ).Msg("release rule defined more than once, last definition wins")
	}
	for _, typ := range release.DuplicateSectionTypes(cfg.SectionRuleList()) {
		logger.Debug().Str("type", typ).Msg("section type defined more than once, last definition wins")
	}

	p.Changelog = release.MapSections(res.Commits, cfg.SectionRuleSet())

	if !p.Eligible {
		logger.Info().
			Str("branch", p.Branch).
			Strs("branches", cfg.Branches).
			Msg("branch is not configured for releases")
		p.Decision = release.NoRelease
		return p, nil
	}

	p.Decision = release.Classify(res.Commits, cfg.ReleaseRuleSet())
	if p.Decision.ShouldRelease {
		p.Next = version.Next(res.LastVersion, p.Decision.Level)
		p.NextTag = format.Tag(p.Next)
	}

	logger.Info().
		Str("last_tag", res.LastTag).
		Int("commits", len(res.Commits)).
		Stringer("level", p.Decision.Level).
		Bool("release", p.Decision.ShouldRelease).
		Msg("commits analyzed")

	return p, nil
}

// NextVersion returns the next version as a string, empty without a
// release.
func (p *pending) NextVersion() string {
	if p.Next == nil {
		return ""
	}
	return p.Next.String()
}

// notesContext returns the header data for release notes.
func (p *pending) notesContext() release.NotesContext {
	return release.NotesContext{Version: p.NextVersion()}
}
