package release

import (
	"strings"

	"github.com/samber/lo"
)

// ReleaseRule maps a commit type to the release level it triggers.
type ReleaseRule struct {
	Type    string `json:"type"`
	Release Level  `json:"release"`
}

// SectionRule maps a commit type to a changelog section.
type SectionRule struct {
	Type    string `json:"type"`
	Section string `json:"section"`
	Hidden  bool   `json:"hidden"`
	Order   int    `json:"order"`
}

/**
 * References:
 * commit-analyzer default release rules:
 * https://github.com/semantic-release/commit-analyzer/blob/master/lib/default-release-rules.js
 */
var DefaultReleaseRules = []ReleaseRule{
	{Type: "feat", Release: Minor},
	{Type: "fix", Release: Patch},
	{Type: "perf", Release: Patch},
	{Type: "revert", Release: Patch},
}

/**
 * References:
 * conventional-changelog-conventionalcommits default types:
 * https://github.com/conventional-changelog/conventional-changelog/blob/master/packages/conventional-changelog-conventionalcommits/constants.js
 */
var DefaultSectionRules = []SectionRule{
	{Type: "feat", Section: "Features", Order: 0},
	{Type: "feature", Section: "Features", Order: 1},
	{Type: "fix", Section: "Bug Fixes", Order: 2},
	{Type: "perf", Section: "Performance Improvements", Order: 3},
	{Type: "revert", Section: "Reverts", Order: 4},
	{Type: "docs", Section: "Documentation", Hidden: true, Order: 5},
	{Type: "style", Section: "Styles", Hidden: true, Order: 6},
	{Type: "chore", Section: "Miscellaneous Chores", Hidden: true, Order: 7},
	{Type: "refactor", Section: "Code Refactoring", Hidden: true, Order: 8},
	{Type: "test", Section: "Tests", Hidden: true, Order: 9},
	{Type: "build", Section: "Build System", Hidden: true, Order: 10},
	{Type: "ci", Section: "Continuous Integration", Hidden: true, Order: 11},
}

// ReleaseRules resolves commit types to release levels. Configured rules are
// layered on top of the built-in defaults.
type ReleaseRules struct {
	overrides map[string]Level
	defaults  map[string]Level
}

// NewReleaseRules creates release rules from the given overrides layered on
// top of DefaultReleaseRules. When a type is defined more than once the last
// definition wins.
func NewReleaseRules(overrides ...ReleaseRule) ReleaseRules {
	return ReleaseRules{
		overrides: releaseTable(overrides),
		defaults:  releaseTable(DefaultReleaseRules),
	}
}

func releaseTable(rules []ReleaseRule) map[string]Level {
	table := make(map[string]Level, len(rules))
	for _, r := range rules {
		table[normalizeType(r.Type)] = r.Release
	}
	return table
}

// Lookup returns the release level configured for the commit type. The
// second return value reports whether any rule, configured or default,
// matched.
func (r ReleaseRules) Lookup(commitType string) (Level, bool) {
	t := normalizeType(commitType)
	if l, ok := r.overrides[t]; ok {
		return l, true
	}
	if l, ok := r.defaults[t]; ok {
		return l, true
	}
	return None, false
}

// SectionRules resolves commit types to changelog sections.
type SectionRules struct {
	byType map[string]SectionRule
}

// NewSectionRules creates section rules. When a type is defined more than
// once the last definition wins.
func NewSectionRules(rules ...SectionRule) SectionRules {
	byType := make(map[string]SectionRule, len(rules))
	for _, r := range rules {
		byType[normalizeType(r.Type)] = r
	}
	return SectionRules{byType: byType}
}

// Lookup returns the section rule for the commit type.
func (s SectionRules) Lookup(commitType string) (SectionRule, bool) {
	r, ok := s.byType[normalizeType(commitType)]
	return r, ok
}

// DuplicateReleaseTypes returns the commit types defined more than once.
func DuplicateReleaseTypes(rules []ReleaseRule) []string {
	return lo.Map(
		lo.FindDuplicatesBy(rules, func(r ReleaseRule) string { return normalizeType(r.Type) }),
		func(r ReleaseRule, _ int) string { return normalizeType(r.Type) },
	)
}

// DuplicateSectionTypes returns the commit types defined more than once.
func DuplicateSectionTypes(rules []SectionRule) []string {
	return lo.Map(
		lo.FindDuplicatesBy(rules, func(r SectionRule) string { return normalizeType(r.Type) }),
		func(r SectionRule, _ int) string { return normalizeType(r.Type) },
	)
}

func normalizeType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
