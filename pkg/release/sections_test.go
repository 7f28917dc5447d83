package release

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zbiljic/semrel/pkg/commit"
)

func visibleSections() SectionRules {
	return NewSectionRules(
		SectionRule{Type: "feat", Section: "Features", Order: 0},
		SectionRule{Type: "fix", Section: "Bug Fixes", Order: 1},
		SectionRule{Type: "docs", Section: "Documentation", Order: 5},
		SectionRule{Type: "chore", Section: "Chores", Hidden: true, Order: 3},
	)
}

func TestMapSections(t *testing.T) {
	t.Run("single documentation entry", func(t *testing.T) {
		got := MapSections([]commit.Record{{Type: "docs", Subject: "update readme"}}, visibleSections())

		require.Len(t, got.Sections, 1)
		assert.Equal(t, "Documentation", got.Sections[0].Title)
		assert.Equal(t, []string{"update readme"}, got.Subjects("Documentation"))
	})

	t.Run("unknown type omitted", func(t *testing.T) {
		got := MapSections([]commit.Record{{Type: "unknown-type", Subject: "x"}}, visibleSections())
		assert.Empty(t, got.Sections)
		assert.True(t, got.IsEmpty())
	})

	t.Run("hidden section omitted", func(t *testing.T) {
		got := MapSections([]commit.Record{{Type: "chore", Subject: "bump deps"}}, visibleSections())
		assert.Empty(t, got.Sections)
	})

	t.Run("declared order independent of input order", func(t *testing.T) {
		commits := []commit.Record{
			{Type: "docs", Subject: "d1"},
			{Type: "fix", Subject: "f1"},
			{Type: "docs", Subject: "d2"},
			{Type: "feat", Subject: "n1"},
			{Type: "fix", Subject: "f2"},
		}
		got := MapSections(commits, visibleSections())

		titles := make([]string, 0, len(got.Sections))
		for _, s := range got.Sections {
			titles = append(titles, s.Title)
		}
		assert.Equal(t, []string{"Features", "Bug Fixes", "Documentation"}, titles)
		assert.Equal(t, []string{"f1", "f2"}, got.Subjects("Bug Fixes"))
		assert.Equal(t, []string{"d1", "d2"}, got.Subjects("Documentation"))
	})

	t.Run("equal order keeps first seen", func(t *testing.T) {
		rules := NewSectionRules(
			SectionRule{Type: "a", Section: "A", Order: 1},
			SectionRule{Type: "b", Section: "B", Order: 1},
		)
		got := MapSections([]commit.Record{{Type: "b", Subject: "1"}, {Type: "a", Subject: "2"}}, rules)
		require.Len(t, got.Sections, 2)
		assert.Equal(t, "B", got.Sections[0].Title)
		assert.Equal(t, "A", got.Sections[1].Title)
	})

	t.Run("types sharing a title share a section", func(t *testing.T) {
		got := MapSections([]commit.Record{
			{Type: "feature", Subject: "one"},
			{Type: "fix", Subject: "two"},
			{Type: "feat", Subject: "three"},
		}, NewSectionRules(DefaultSectionRules...))

		require.Len(t, got.Sections, 2)
		assert.Equal(t, "Features", got.Sections[0].Title)
		assert.Equal(t, []string{"one", "three"}, got.Subjects("Features"))
	})

	t.Run("breaking notes collected even when hidden", func(t *testing.T) {
		got := MapSections([]commit.Record{
			{Type: "chore", Subject: "drop node 18", Breaking: true, BreakingNotes: []string{"node 20 required"}},
			{Type: "feat", Scope: "api", Subject: "remove v1", Breaking: true, Hash: "abc"},
		}, visibleSections())

		assert.Equal(t, []Entry{
			{Subject: "node 20 required"},
			{Subject: "remove v1", Scope: "api", Hash: "abc"},
		}, got.BreakingChanges)
		require.Len(t, got.Sections, 1)
		assert.Equal(t, "Features", got.Sections[0].Title)
	})

	t.Run("extreme orders stay ascending", func(t *testing.T) {
		rules := NewSectionRules(
			SectionRule{Type: "feat", Section: "Features", Order: math.MinInt},
			SectionRule{Type: "fix", Section: "Bug Fixes", Order: 1},
			SectionRule{Type: "docs", Section: "Documentation", Order: math.MaxInt},
		)
		got := MapSections([]commit.Record{
			{Type: "docs", Subject: "d"},
			{Type: "fix", Subject: "f"},
			{Type: "feat", Subject: "n"},
		}, rules)

		require.Len(t, got.Sections, 3)
		assert.Equal(t, "Features", got.Sections[0].Title)
		assert.Equal(t, "Bug Fixes", got.Sections[1].Title)
		assert.Equal(t, "Documentation", got.Sections[2].Title)
	})

	t.Run("last definition wins", func(t *testing.T) {
		rules := NewSectionRules(
			SectionRule{Type: "docs", Section: "Docs", Hidden: true},
			SectionRule{Type: "docs", Section: "Documentation"},
		)
		got := MapSections([]commit.Record{{Type: "docs", Subject: "x"}}, rules)
		require.Len(t, got.Sections, 1)
		assert.Equal(t, "Documentation", got.Sections[0].Title)
	})
}

func TestRenderMarkdown(t *testing.T) {
	c := Changelog{
		BreakingChanges: []Entry{{Subject: "config v0 is no longer read", Scope: "config"}},
		Sections: []Section{
			{Title: "Features", Entries: []Entry{{Subject: "add notes command", Scope: "cli", Hash: "0123456789abcdef"}}},
			{Title: "Bug Fixes", Entries: []Entry{{Subject: "multi\nline"}}},
		},
	}

	var buf bytes.Buffer
	err := RenderMarkdown(&buf, NotesContext{
		Version: "1.3.0",
		Date:    time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}, c)
	require.NoError(t, err)

	want := "## 1.3.0 (2026-10-19)\n" +
		"\n### ⚠ BREAKING CHANGES\n\n" +
		"* **config:** config v0 is no longer read\n" +
		"\n### Features\n\n" +
		"* **cli:** add notes command (0123456)\n" +
		"\n### Bug Fixes\n\n" +
		"* multi\n  line\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderMarkdownUnreleased(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, NotesContext{}, Changelog{}))
	assert.Equal(t, "## Unreleased\n", buf.String())
}
