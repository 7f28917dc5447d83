package config

import (
	"path"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/samber/lo"

	"github.com/zbiljic/semrel/pkg/release"
	"github.com/zbiljic/semrel/pkg/version"
)

// Config represents the current version of configuration
type Config = configV1

// Type aliases for external packages
type (
	ReleaseRuleConfig = releaseRuleV1
	TypeConfig        = typeV1
)

// Plugin identifiers, in the order they run by default.
const (
	PluginCommitAnalyzer        = "commit-analyzer"
	PluginExportData            = "export-data"
	PluginReleaseNotesGenerator = "release-notes-generator"
	PluginGitHub                = "github"
)

// NewDefault creates a new configuration
func NewDefault() *Config {
	return newConfigV1()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return c.validateV1()
}

// BranchAllowed reports whether releases may be made from the branch.
func (c *Config) BranchAllowed(branch string) bool {
	return lo.SomeBy(c.Branches, func(pattern string) bool {
		ok, err := path.Match(pattern, branch)
		return err == nil && ok
	})
}

// Format returns the tag format.
func (c *Config) Format() (*version.Format, error) {
	return version.NewFormat(c.TagFormat)
}

// ReleaseRuleList returns the configured release rules in declared order.
func (c *Config) ReleaseRuleList() []release.ReleaseRule {
	return slice.Map(c.ReleaseRules, func(_ int, r releaseRuleV1) release.ReleaseRule {
		return release.ReleaseRule{Type: r.Type, Release: r.Release}
	})
}

// SectionRuleList returns the configured section rules in declared order.
// Types without an explicit order are ordered by their position.
func (c *Config) SectionRuleList() []release.SectionRule {
	return slice.Map(c.Types, func(i int, t typeV1) release.SectionRule {
		return release.SectionRule{
			Type:    t.Type,
			Section: t.Section,
			Hidden:  t.Hidden,
			Order:   lo.FromPtrOr(t.Order, i),
		}
	})
}

// ReleaseRuleSet returns the release rules layered on top of the defaults.
func (c *Config) ReleaseRuleSet() release.ReleaseRules {
	return release.NewReleaseRules(c.ReleaseRuleList()...)
}

// SectionRuleSet returns the changelog section rules. Without configured
// types the conventional-commits defaults apply.
func (c *Config) SectionRuleSet() release.SectionRules {
	if len(c.Types) == 0 {
		return release.NewSectionRules(release.DefaultSectionRules...)
	}
	return release.NewSectionRules(c.SectionRuleList()...)
}

// NormalizePlugin strips the package scope and prefix of semantic-release
// plugin names, so "@semantic-release/github" becomes "github".
func NormalizePlugin(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "@semantic-release/")
	name = strings.TrimPrefix(name, "semantic-release-")
	return name
}

// PluginList returns the normalized plugin names in declared order.
func (c *Config) PluginList() []string {
	return slice.Map(c.Plugins, func(_ int, p string) string { return NormalizePlugin(p) })
}
