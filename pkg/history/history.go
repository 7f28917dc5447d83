// Package history reads the commits that are pending release from a git
// repository.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-semver/semver"

	"github.com/zbiljic/semrel/pkg/commit"
)

var (
	// ErrNotRepository is returned when the directory is not inside a git
	// working tree.
	ErrNotRepository = errors.New("not a git repository")

	// ErrNoCommits is returned for repositories without any commit.
	ErrNoCommits = errors.New("repository has no commits")

	// ErrUnknownBackend is returned by New for unsupported backends.
	ErrUnknownBackend = errors.New("unknown history backend")
)

// Backend selects how history is read.
type Backend int

const (
	// ExecBackend runs the git executable.
	ExecBackend Backend = iota
	// GoGitBackend reads the repository with a pure Go implementation.
	GoGitBackend
)

// BackendIds maps Backend to their string representations.
var BackendIds = map[Backend][]string{
	ExecBackend:  {"exec", "git"},
	GoGitBackend: {"gogit", "go-git"},
}

// String converts the Backend value to a string representation.
func (b Backend) String() string {
	if val, ok := BackendIds[b]; ok {
		return val[0]
	}
	return fmt.Sprintf("UnknownBackend(%d)", b)
}

// TagParser extracts the version from release tag names.
type TagParser interface {
	Parse(tag string) (*semver.Version, bool)
}

// Result is the history pending release.
type Result struct {
	// Branch is the checked out branch, empty for a detached HEAD.
	Branch string
	// LastTag is the most recent release tag reachable from HEAD, empty if
	// there is none.
	LastTag string
	// LastVersion is the version parsed from LastTag.
	LastVersion *semver.Version
	// Commits are the commits made after LastTag, newest first.
	Commits []commit.Record
}

// Reader reads history pending release.
type Reader interface {
	Read(ctx context.Context) (*Result, error)
}

// New creates a history reader for the repository containing dir.
func New(backend Backend, dir string, tags TagParser) (Reader, error) {
	switch backend {
	case ExecBackend:
		return &execReader{dir: dir, tags: tags}, nil
	case GoGitBackend:
		return &goGitReader{dir: dir, tags: tags}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// WorkingTreeDir returns the top level directory of the git working tree
// containing dir, discovered the way the backend reads history.
func WorkingTreeDir(backend Backend, dir string) (string, error) {
	switch backend {
	case ExecBackend:
		return execWorkingTreeDir(dir)
	case GoGitBackend:
		return goGitWorkingTreeDir(dir)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

type taggedVersion struct {
	tag     string
	version *semver.Version
	hash    string
}

// latestTag returns the release tag with the highest version.
func latestTag(candidates []taggedVersion) (taggedVersion, bool) {
	var (
		best  taggedVersion
		found bool
	)
	for _, c := range candidates {
		if !found || best.version.LessThan(*c.version) {
			best = c
			found = true
		}
	}
	return best, found
}

// matchTags returns the tags that parse as release versions.
func matchTags(tags TagParser, hash string, names []string) []taggedVersion {
	var out []taggedVersion
	for _, name := range names {
		name = strings.TrimSpace(name)
		if v, ok := tags.Parse(name); ok {
			out = append(out, taggedVersion{tag: name, version: v, hash: hash})
		}
	}
	return out
}
