// Package export writes the release decision for consumption by later CI
// steps, in the GitHub Actions output file format.
package export

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvGitHubOutput is the environment variable naming the output file.
const EnvGitHubOutput = "GITHUB_OUTPUT"

var errMultiline = errors.New("value must not contain a newline")

// Data is the exported release decision.
type Data struct {
	Published bool
	Version   string
	Tag       string
	Level     string
}

// Pairs returns the exported key/value pairs in a stable order.
func (d Data) Pairs() [][2]string {
	return [][2]string{
		{"new-release-published", strconv.FormatBool(d.Published)},
		{"new-release-version", d.Version},
		{"new-release-git-tag", d.Tag},
		{"new-release-type", d.Level},
	}
}

// Path returns the output path, preferring the explicit one over the
// environment.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(EnvGitHubOutput)
}

// Write appends the data to the file at path. An empty path is a no-op,
// which is the case outside of CI.
func Write(path string, d Data) error {
	if path == "" {
		return nil
	}

	var sb strings.Builder
	for _, kv := range d.Pairs() {
		if strings.ContainsAny(kv[1], "\r\n") {
			return fmt.Errorf("%s: %w", kv[0], errMultiline)
		}
		fmt.Fprintf(&sb, "%s=%s\n", kv[0], kv[1])
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	return nil
}
