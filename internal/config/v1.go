package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/zbiljic/semrel/pkg/release"
	"github.com/zbiljic/semrel/pkg/version"
)

const configVersionV1 = "1"

type configV1 struct {
	Version      string          `json:"version"` // required by vconfig-go
	Branches     []string        `json:"branches"`
	TagFormat    string          `json:"tagFormat"`
	ReleaseRules []releaseRuleV1 `json:"releaseRules,omitempty"`
	Types        []typeV1        `json:"types,omitempty"`
	Plugins      []string        `json:"plugins,omitempty"`
}

// releaseRuleV1 overrides the release level of a commit type
type releaseRuleV1 struct {
	Type    string        `json:"type"`
	Release release.Level `json:"release"`
}

// typeV1 configures the changelog section of a commit type
type typeV1 struct {
	Type    string `json:"type"`
	Section string `json:"section"`
	Hidden  bool   `json:"hidden"`
	Order   *int   `json:"order,omitempty"` // defaults to the declared position
}

// newConfigV1 creates a new v1 configuration
func newConfigV1() *configV1 {
	return &configV1{
		Version:   configVersionV1,
		Branches:  []string{"main"},
		TagFormat: version.Placeholder,
		ReleaseRules: []releaseRuleV1{
			{Type: "build", Release: release.Patch},
			{Type: "chore", Release: release.Patch},
			{Type: "ci", Release: release.Patch},
			{Type: "docs", Release: release.Patch},
			{Type: "perf", Release: release.Patch},
			{Type: "refactor", Release: release.Patch},
			{Type: "revert", Release: release.Patch},
			{Type: "style", Release: release.Patch},
			{Type: "test", Release: release.Patch},
		},
		Types: []typeV1{
			{Type: "feat", Section: "Features"},
			{Type: "fix", Section: "Bug Fixes"},
			{Type: "build", Section: "Build System"},
			{Type: "chore", Section: "Chores"},
			{Type: "ci", Section: "Continuous Integration"},
			{Type: "docs", Section: "Documentation"},
			{Type: "perf", Section: "Performance Improvements"},
			{Type: "refactor", Section: "Code Refactoring"},
			{Type: "revert", Section: "Reverts"},
			{Type: "style", Section: "Styles"},
			{Type: "test", Section: "Tests"},
		},
		Plugins: []string{
			PluginCommitAnalyzer,
			PluginExportData,
			PluginReleaseNotesGenerator,
			PluginGitHub,
		},
	}
}

func (c *configV1) validateV1() error {
	if len(c.Branches) == 0 {
		return errMissingField("branches")
	}

	for _, b := range c.Branches {
		if _, err := path.Match(b, ""); err != nil {
			return fmt.Errorf("invalid branch pattern '%s': %w", b, err)
		}
	}

	if _, err := version.NewFormat(c.TagFormat); err != nil {
		return fmt.Errorf("invalid tag format '%s': %w", c.TagFormat, err)
	}

	for i, r := range c.ReleaseRules {
		if strings.TrimSpace(r.Type) == "" {
			return fmt.Errorf("release rule #%d must have a type", i+1)
		}
	}

	for i, t := range c.Types {
		if strings.TrimSpace(t.Type) == "" {
			return fmt.Errorf("type #%d must have a type", i+1)
		}
		if !t.Hidden && strings.TrimSpace(t.Section) == "" {
			return fmt.Errorf("type '%s' must have a section unless hidden", t.Type)
		}
	}

	return nil
}
