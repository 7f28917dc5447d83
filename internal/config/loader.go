package config

import (
	"os"
	"path/filepath"

	"github.com/zbiljic/vconfig-go"
)

// FileName is the name of the configuration file.
const FileName = "semrel.json"

// Load loads configuration from configPath. When configPath is empty the
// search paths are tried in order and the defaults are used if no file
// exists.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		found, err := FindFile()
		if err != nil {
			if os.IsNotExist(err) {
				return NewDefault(), nil
			}
			return nil, err
		}
		configPath = found
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, err
	}

	config, err := load(configPath)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, filename string) error {
	if config == nil || filename == "" {
		return errInvalidArgument
	}

	// ensure directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errFailedToCreateDirectory(dir, err)
	}

	if err := vconfig.SaveConfig(config, filename); err != nil {
		return errFailedToSaveConfig(filename, err)
	}

	return nil
}

// FindFile searches for configuration file in hierarchical order
func FindFile() (string, error) {
	for _, path := range GetSearchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", os.ErrNotExist
}

// GetSearchPaths returns the list of paths to search for configuration files
func GetSearchPaths() []string {
	var paths []string

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	// 1. ./.semrel.json (current directory)
	paths = append(paths, filepath.Join(cwd, "."+FileName))

	// 2. ./semrel.json (current directory)
	paths = append(paths, filepath.Join(cwd, FileName))

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return paths
	}

	// 3. Walk up directories looking for semrel.json
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			break // reached root or home directory
		}
		dir = parent
		paths = append(paths, filepath.Join(dir, FileName))
	}

	// 4. ~/.config/semrel/semrel.json (user config)
	paths = append(paths, filepath.Join(homeDir, ".config", "semrel", FileName))

	// 5. ~/.semrel.json (user home fallback)
	paths = append(paths, filepath.Join(homeDir, "."+FileName))

	return paths
}

// GetPath returns the path where configuration would be loaded from
func GetPath() (string, bool) {
	path, err := FindFile()
	return path, err == nil
}

// GetDefaultPath returns the default path for a project configuration
// inside the given directory.
func GetDefaultPath(dir string) string {
	return filepath.Join(dir, "."+FileName)
}
