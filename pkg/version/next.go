package version

import (
	"github.com/coreos/go-semver/semver"

	"github.com/zbiljic/semrel/pkg/release"
)

// FirstRelease is the version used when the repository has no release tag.
const FirstRelease = "1.0.0"

// Next returns the version following last for the given release level.
// A nil last version means there is no previous release. Next returns nil
// when the level does not trigger a release.
func Next(last *semver.Version, level release.Level) *semver.Version {
	if level == release.None {
		return nil
	}

	if last == nil {
		return semver.New(FirstRelease)
	}

	next := *last
	next.PreRelease = ""
	next.Metadata = ""

	switch level {
	case release.Major:
		next.BumpMajor()
	case release.Minor:
		next.BumpMinor()
	default:
		next.BumpPatch()
	}

	return &next
}
