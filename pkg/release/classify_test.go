package release

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zbiljic/semrel/pkg/commit"
)

// configuredRules mirrors the overrides of the default project configuration.
var configuredRules = []ReleaseRule{
	{Type: "build", Release: Patch},
	{Type: "chore", Release: Patch},
	{Type: "ci", Release: Patch},
	{Type: "docs", Release: Patch},
	{Type: "perf", Release: Patch},
	{Type: "refactor", Release: Patch},
	{Type: "revert", Release: Patch},
	{Type: "style", Release: Patch},
	{Type: "test", Release: Patch},
}

func TestClassify(t *testing.T) {
	rules := NewReleaseRules(configuredRules...)

	tests := map[string]struct {
		commits []commit.Record
		want    Decision
	}{
		"empty sequence": {
			commits: nil,
			want:    NoRelease,
		},
		"feat wins over chore": {
			commits: []commit.Record{{Type: "feat"}, {Type: "chore"}},
			want:    Decision{Level: Minor, ShouldRelease: true},
		},
		"docs override": {
			commits: []commit.Record{{Type: "docs", Subject: "update readme"}},
			want:    Decision{Level: Patch, ShouldRelease: true},
		},
		"breaking fix": {
			commits: []commit.Record{{Type: "fix", Breaking: true}},
			want:    Decision{Level: Major, ShouldRelease: true},
		},
		"unknown type": {
			commits: []commit.Record{{Type: "unknown-type"}},
			want:    NoRelease,
		},
		"missing type": {
			commits: []commit.Record{{Subject: "Merge branch 'main'"}},
			want:    NoRelease,
		},
		"type lookup ignores case": {
			commits: []commit.Record{{Type: "FEAT"}},
			want:    Decision{Level: Minor, ShouldRelease: true},
		},
		"breaking unknown type": {
			commits: []commit.Record{{Type: "wip", Breaking: true}, {Type: "fix"}},
			want:    Decision{Level: Major, ShouldRelease: true},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Classify(tt.commits, rules)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Classify(tt.commits, rules), "classification must be repeatable")
		})
	}
}

func TestClassifyBreakingAlwaysMajor(t *testing.T) {
	rules := NewReleaseRules(configuredRules...)
	types := []string{"feat", "fix", "chore", "docs", "unknown", ""}

	for _, breakingType := range types {
		for _, other := range types {
			commits := []commit.Record{
				{Type: other},
				{Type: breakingType, Breaking: true},
				{Type: other},
			}
			got := Classify(commits, rules)
			assert.Equal(t, Major, got.Level, "breaking %q with %q", breakingType, other)
			assert.True(t, got.ShouldRelease)
		}
	}
}

func TestReleaseRulesLastWins(t *testing.T) {
	rules := NewReleaseRules(
		ReleaseRule{Type: "docs", Release: Minor},
		ReleaseRule{Type: "docs", Release: Patch},
		ReleaseRule{Type: "feat", Release: None},
	)

	l, ok := rules.Lookup("docs")
	require.True(t, ok)
	assert.Equal(t, Patch, l)

	l, ok = rules.Lookup("feat")
	require.True(t, ok)
	assert.Equal(t, None, l, "override must shadow the default")

	l, ok = rules.Lookup("fix")
	require.True(t, ok)
	assert.Equal(t, Patch, l, "defaults apply to types without overrides")

	_, ok = rules.Lookup("chore")
	assert.False(t, ok)

	assert.Equal(t, []string{"docs"}, DuplicateReleaseTypes([]ReleaseRule{
		{Type: "docs"}, {Type: "fix"}, {Type: "Docs"},
	}))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "major", want: Major},
		{input: "Minor", want: Minor},
		{input: " patch ", want: Patch},
		{input: "none", want: None},
		{input: "false", want: None},
		{input: "huge", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	assert.Equal(t, "minor", Minor.String())
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "UnknownLevel(9)", Level(9).String())
}

func TestLevelUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: `"minor"`, want: Minor},
		{input: `"false"`, want: None},
		{input: `false`, want: None},
		{input: ` false `, want: None},
		{input: `true`, wantErr: true},
		{input: `"huge"`, wantErr: true},
		{input: `3`, wantErr: true},
	}

	for _, tt := range tests {
		l := Patch
		err := l.UnmarshalJSON([]byte(tt.input))
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, l, tt.input)
	}

	var rule struct {
		Release Level `json:"release"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"release": false}`), &rule))
	assert.Equal(t, None, rule.Release)
}
