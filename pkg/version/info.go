package version

import (
	"strings"

	"github.com/coreos/go-semver/semver"
)

// Info describes the build of the semrel binary itself.
type Info struct {
	Version string
	Commit  string
	BuiltBy string
}

// Semver returns the parsed build version, or nil for development builds
// and versions that are not semantic.
func (vi Info) Semver() *semver.Version {
	if vi.Version == "" {
		return nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(vi.Version, "v"))
	if err != nil {
		return nil
	}
	return v
}

func (vi Info) String() string {
	var elems []string

	switch v := vi.Semver(); {
	case v != nil:
		elems = append(elems, "v"+v.String())
	case vi.Version != "":
		return vi.Version
	default:
		elems = append(elems, "dev")
	}

	if vi.Commit != "" {
		elems = append(elems, "commit "+vi.Commit)
	}
	if vi.BuiltBy != "" {
		elems = append(elems, "built by "+vi.BuiltBy)
	}
	return strings.Join(elems, ", ")
}
