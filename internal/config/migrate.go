package config

import (
	"fmt"
	"os"

	"github.com/zbiljic/vconfig-go"
)

// load loads the config file at path, migrating older versions to the
// current one.
func load(configPath string) (*Config, error) {
	version, err := vconfig.GetVersion(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), nil
		}
		return nil, err
	}

	switch version {
	case configVersionV0:
		old, err := vconfig.LoadConfig[configV0](configPath)
		if err != nil {
			return nil, errLoadVersion(version, err)
		}
		if err := old.validateV0(); err != nil {
			return nil, errLoadVersion(version, err)
		}
		return migrateV0ToV1(old), nil
	case configVersionV1:
		config, err := vconfig.LoadConfig[configV1](configPath)
		if err != nil {
			return nil, errLoadVersion(version, err)
		}
		return config, nil
	default:
		return nil, errUnknownVersion(version)
	}
}

// migrateV0ToV1 keeps branches and tag format and fills the rest with
// defaults.
func migrateV0ToV1(old *configV0) *configV1 {
	config := newConfigV1()
	config.Branches = append([]string(nil), old.Branch...)
	if old.TagFormat != "" {
		config.TagFormat = old.TagFormat
	}
	return config
}

// Migrate rewrites an older config file in the current version.
func Migrate(configPath string) (*Config, bool, error) {
	version, err := vconfig.GetVersion(configPath)
	if err != nil {
		return nil, false, err
	}

	config, err := load(configPath)
	if err != nil {
		return nil, false, err
	}

	if version == configVersionV1 {
		return config, false, nil
	}

	if err := Save(config, configPath); err != nil {
		return nil, false, fmt.Errorf("migrating version '%s': %w", version, err)
	}

	return config, true, nil
}
