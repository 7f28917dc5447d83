package config

import "github.com/zbiljic/semrel/pkg/version"

const configVersionV0 = "0"

// configV0 is the legacy layout, which only knew about release branches
// (under the singular "branch" key) and the tag format.
type configV0 struct {
	Version   string   `json:"version"` // required by vconfig-go
	Branch    []string `json:"branch"`
	TagFormat string   `json:"tagFormat,omitempty"`
}

// newConfigV0 creates a new v0 configuration
func newConfigV0() *configV0 {
	return &configV0{
		Version:   configVersionV0,
		Branch:    []string{"main"},
		TagFormat: version.Placeholder,
	}
}

func (c *configV0) validateV0() error {
	if len(c.Branch) == 0 {
		return errMissingField("branch")
	}
	return nil
}
