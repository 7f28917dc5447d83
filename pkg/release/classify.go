package release

import "github.com/zbiljic/semrel/pkg/commit"

// Decision is the aggregate release decision for a sequence of commits.
type Decision struct {
	Level         Level `json:"level"`
	ShouldRelease bool  `json:"shouldRelease"`
}

// NoRelease is the decision produced when no commit triggers a release.
var NoRelease = Decision{Level: None}

// LevelFor returns the release level a single commit triggers. A breaking
// change always yields Major regardless of the commit type.
func (r ReleaseRules) LevelFor(c commit.Record) Level {
	if c.Breaking {
		return Major
	}
	l, _ := r.Lookup(c.Type)
	return l
}

// Classify computes the highest release level across all commits.
func Classify(commits []commit.Record, rules ReleaseRules) Decision {
	level := None
	for _, c := range commits {
		if l := rules.LevelFor(c); l > level {
			level = l
		}
		if level == Major {
			break
		}
	}

	if level == None {
		return NoRelease
	}

	return Decision{
		Level:         level,
		ShouldRelease: true,
	}
}
