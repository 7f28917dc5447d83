package version

import (
	"errors"
	"regexp"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// Placeholder is the token replaced by the version in a tag format.
const Placeholder = "${version}"

// ErrInvalidTagFormat is returned for tag formats that do not contain the
// version placeholder exactly once.
var ErrInvalidTagFormat = errors.New("tag format must contain ${version} exactly once")

// semverPattern matches a semantic version without a leading "v".
const semverPattern = `(\d+\.\d+\.\d+(?:-[0-9A-Za-z\-\.]+)?(?:\+[0-9A-Za-z\-\.]+)?)`

// Format renders and recognizes release tags.
type Format struct {
	template string
	re       *regexp.Regexp
}

// NewFormat creates a tag format from a template such as "${version}" or
// "v${version}".
func NewFormat(template string) (*Format, error) {
	if strings.Count(template, Placeholder) != 1 {
		return nil, ErrInvalidTagFormat
	}

	prefix, suffix, _ := strings.Cut(template, Placeholder)
	re, err := regexp.Compile("^" + regexp.QuoteMeta(prefix) + semverPattern + regexp.QuoteMeta(suffix) + "$")
	if err != nil {
		return nil, err
	}

	return &Format{template: template, re: re}, nil
}

// Template returns the tag format template.
func (f *Format) Template() string {
	return f.template
}

// Tag renders the tag name for a version.
func (f *Format) Tag(v *semver.Version) string {
	return strings.Replace(f.template, Placeholder, v.String(), 1)
}

// Parse extracts the version from a tag name. The second return value is
// false if the tag does not match the format.
func (f *Format) Parse(tag string) (*semver.Version, bool) {
	match := f.re.FindStringSubmatch(strings.TrimSpace(tag))
	if len(match) == 0 {
		return nil, false
	}

	v, err := semver.NewVersion(match[1])
	if err != nil {
		return nil, false
	}

	return v, true
}

// Matches reports whether the tag name follows the format.
func (f *Format) Matches(tag string) bool {
	_, ok := f.Parse(tag)
	return ok
}
