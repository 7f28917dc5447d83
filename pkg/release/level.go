package release

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Level is the magnitude of a version increment.
type Level int

const (
	// None means the commit does not trigger a release.
	None Level = iota
	// Patch represents a backwards compatible bug fix.
	Patch
	// Minor represents backwards compatible new functionality.
	Minor
	// Major represents an incompatible change.
	Major
)

// LevelIds maps Level to their string representations. The first id is the
// canonical one.
var LevelIds = map[Level][]string{
	None:  {"none", "false"},
	Patch: {"patch"},
	Minor: {"minor"},
	Major: {"major"},
}

// ParseLevel parses a string and returns the corresponding Level.
// It returns an error if the string doesn't match any known Level.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	for l, ids := range LevelIds {
		for _, id := range ids {
			if strings.EqualFold(id, s) {
				return l, nil
			}
		}
	}
	return None, fmt.Errorf("unknown release level: %q", s)
}

// String converts the Level value to a string representation.
func (l Level) String() string {
	if val, ok := LevelIds[l]; ok {
		return val[0]
	}
	return fmt.Sprintf("UnknownLevel(%d)", l)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// UnmarshalJSON accepts the level names as well as a bare false, which
// semantic-release configurations use to disable a release.
func (l *Level) UnmarshalJSON(data []byte) error {
	switch data = bytes.TrimSpace(data); {
	case bytes.Equal(data, []byte("false")):
		*l = None
		return nil
	case bytes.Equal(data, []byte("true")):
		return errors.New("release level must be a level name or false")
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("release level: %w", err)
	}
	return l.UnmarshalText([]byte(s))
}
