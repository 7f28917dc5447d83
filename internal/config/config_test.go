package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zbiljic/vconfig-go"

	"github.com/zbiljic/semrel/pkg/commit"
	"github.com/zbiljic/semrel/pkg/release"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewDefault(t *testing.T) {
	c := NewDefault()
	require.NoError(t, c.Validate())

	assert.Equal(t, []string{"main"}, c.Branches)
	assert.Equal(t, "${version}", c.TagFormat)
	assert.Equal(t, []string{PluginCommitAnalyzer, PluginExportData, PluginReleaseNotesGenerator, PluginGitHub}, c.PluginList())

	rules := c.ReleaseRuleSet()
	for _, typ := range []string{"build", "chore", "ci", "docs", "perf", "refactor", "revert", "style", "test", "fix"} {
		l, ok := rules.Lookup(typ)
		require.True(t, ok, typ)
		assert.Equal(t, release.Patch, l, typ)
	}
	l, _ := rules.Lookup("feat")
	assert.Equal(t, release.Minor, l)

	sections := c.SectionRuleList()
	require.Len(t, sections, 11)
	for i, s := range sections {
		assert.Equal(t, i, s.Order)
		assert.False(t, s.Hidden)
	}
}

func TestDefaultScenarios(t *testing.T) {
	c := NewDefault()

	commits := []commit.Record{{Type: "docs", Subject: "explain config"}}
	assert.Equal(t, release.Decision{Level: release.Patch, ShouldRelease: true}, release.Classify(commits, c.ReleaseRuleSet()))

	cl := release.MapSections(commits, c.SectionRuleSet())
	require.Len(t, cl.Sections, 1)
	assert.Equal(t, "Documentation", cl.Sections[0].Title)
	assert.Equal(t, []string{"explain config"}, cl.Subjects("Documentation"))
}

func TestBranchAllowed(t *testing.T) {
	c := NewDefault()
	c.Branches = []string{"main", "release/*"}

	assert.True(t, c.BranchAllowed("main"))
	assert.True(t, c.BranchAllowed("release/1.x"))
	assert.False(t, c.BranchAllowed("master"))
	assert.False(t, c.BranchAllowed("release/1.x/hotfix"))
	assert.False(t, c.BranchAllowed(""))
}

func TestValidate(t *testing.T) {
	tests := map[string]func(c *Config){
		"no branches":       func(c *Config) { c.Branches = nil },
		"bad pattern":       func(c *Config) { c.Branches = []string{"[main"} },
		"bad tag format":    func(c *Config) { c.TagFormat = "v1" },
		"rule without type": func(c *Config) { c.ReleaseRules = append(c.ReleaseRules, ReleaseRuleConfig{}) },
		"visible type without section": func(c *Config) {
			c.Types = append(c.Types, TypeConfig{Type: "wip"})
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewDefault()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestSectionRuleListExplicitOrder(t *testing.T) {
	first := 10
	c := NewDefault()
	c.Types = []TypeConfig{
		{Type: "feat", Section: "Features", Order: &first},
		{Type: "fix", Section: "Bug Fixes"},
	}

	rules := c.SectionRuleList()
	assert.Equal(t, 10, rules[0].Order)
	assert.Equal(t, 1, rules[1].Order)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	c := NewDefault()
	c.Branches = []string{"main", "next"}
	c.TagFormat = "v${version}"
	require.NoError(t, Save(c, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c.Branches, loaded.Branches)
	assert.Equal(t, c.TagFormat, loaded.TagFormat)
	assert.Equal(t, c.ReleaseRules, loaded.ReleaseRules)
	assert.Equal(t, c.Types, loaded.Types)

	assert.ErrorIs(t, Save(nil, path), errInvalidArgument)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadUnknownVersion(t *testing.T) {
	path := writeFile(t, FileName, `{"version": "42"}`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown version")
}

func TestLoadInvalidLevel(t *testing.T) {
	path := writeFile(t, FileName, `{"version": "1", "branches": ["main"], "tagFormat": "${version}", "releaseRules": [{"type": "docs", "release": "huge"}]}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestMigrateV0(t *testing.T) {
	path := writeFile(t, FileName, `{"version": "0", "branch": ["master"], "tagFormat": "v${version}"}`)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, configVersionV1, loaded.Version)
	assert.Equal(t, []string{"master"}, loaded.Branches)
	assert.Equal(t, "v${version}", loaded.TagFormat)
	assert.Equal(t, NewDefault().ReleaseRules, loaded.ReleaseRules)

	migrated, changed, err := Migrate(path)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, loaded, migrated)

	_, changed, err = Migrate(path)
	require.NoError(t, err)
	assert.False(t, changed, "second migration is a no-op")
}

func TestMigrateV0Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, vconfig.SaveConfig(newConfigV0(), path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, NewDefault(), loaded)
}

func TestLoadReleaseFalse(t *testing.T) {
	path := writeFile(t, FileName, `{"version": "1", "branches": ["main"], "tagFormat": "${version}", "releaseRules": [{"type": "fix", "release": false}]}`)

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.ReleaseRules, 1)
	assert.Equal(t, release.None, loaded.ReleaseRules[0].Release)

	d := release.Classify([]commit.Record{{Type: "fix", Subject: "x"}}, loaded.ReleaseRuleSet())
	assert.Equal(t, release.NoRelease, d)
}
