// Package buildinfo holds the version of the semrel binary, set by linker
// flags:
//
//	-X github.com/zbiljic/semrel/internal/buildinfo.Version=v1.2.3
package buildinfo

// Empty values mark a development build.
var (
	Version   string
	GitCommit string
	BuiltBy   string
)
