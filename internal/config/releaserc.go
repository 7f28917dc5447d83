package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/zbiljic/semrel/pkg/release"
)

var errNotJSON = errors.New("content is not valid JSON")

// Import reads a semantic-release configuration (.releaserc.json,
// .releaserc.yaml or the "release" key of package.json) and converts it into
// the current configuration version. Settings the file does not mention keep
// their default values.
func Import(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errFailedToImport(filename, err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, errFailedToImport(filename, err)
		}
	}

	if !gjson.ValidBytes(data) {
		return nil, errFailedToImport(filename, errNotJSON)
	}

	root := gjson.ParseBytes(data)
	if filepath.Base(filename) == "package.json" {
		root = root.Get("release")
		if !root.Exists() {
			return nil, errFailedToImport(filename, errors.New("no 'release' key found"))
		}
	}

	config, err := importReleaserc(root)
	if err != nil {
		return nil, errFailedToImport(filename, err)
	}

	return config, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func importReleaserc(root gjson.Result) (*Config, error) {
	config := NewDefault()

	branches := root.Get("branches")
	if !branches.Exists() {
		branches = root.Get("branch")
	}
	if branches.Exists() {
		config.Branches = importBranches(branches)
	}

	if tf := root.Get("tagFormat"); tf.Exists() {
		config.TagFormat = tf.String()
	}

	if plugins := root.Get("plugins"); plugins.Exists() {
		config.Plugins = nil
		config.ReleaseRules = nil
		config.Types = nil

		for _, p := range plugins.Array() {
			name, opts := pluginNameAndOptions(p)
			if name == "" {
				continue
			}
			config.Plugins = append(config.Plugins, name)

			switch NormalizePlugin(name) {
			case PluginCommitAnalyzer:
				rules, err := importReleaseRules(opts.Get("releaseRules"))
				if err != nil {
					return nil, err
				}
				config.ReleaseRules = append(config.ReleaseRules, rules...)
			case PluginReleaseNotesGenerator:
				config.Types = append(config.Types, importTypes(opts.Get("presetConfig.types"))...)
			}
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// importBranches accepts a single branch name, a list of names or a list of
// branch objects with a "name" key.
func importBranches(v gjson.Result) []string {
	if !v.IsArray() {
		return []string{v.String()}
	}

	var out []string
	for _, b := range v.Array() {
		if b.IsObject() {
			if name := b.Get("name").String(); name != "" {
				out = append(out, name)
			}
			continue
		}
		out = append(out, b.String())
	}
	return out
}

// pluginNameAndOptions handles both the "name" and ["name", {options}]
// plugin notations.
func pluginNameAndOptions(p gjson.Result) (string, gjson.Result) {
	if !p.IsArray() {
		return p.String(), gjson.Result{}
	}
	items := p.Array()
	if len(items) == 0 {
		return "", gjson.Result{}
	}
	if len(items) == 1 {
		return items[0].String(), gjson.Result{}
	}
	return items[0].String(), items[1]
}

// importReleaseRules converts commit-analyzer release rules. Rules without
// a type (for example {"breaking": true}) have no equivalent and are
// skipped.
func importReleaseRules(v gjson.Result) ([]releaseRuleV1, error) {
	var out []releaseRuleV1
	for _, r := range v.Array() {
		t := r.Get("type").String()
		if t == "" {
			continue
		}

		rel := r.Get("release")
		level := release.None
		if rel.Type == gjson.String {
			parsed, err := release.ParseLevel(rel.String())
			if err != nil {
				return nil, fmt.Errorf("release rule for '%s': %w", t, err)
			}
			level = parsed
		}

		out = append(out, releaseRuleV1{Type: t, Release: level})
	}
	return out, nil
}

func importTypes(v gjson.Result) []typeV1 {
	var out []typeV1
	for _, t := range v.Array() {
		out = append(out, typeV1{
			Type:    t.Get("type").String(),
			Section: t.Get("section").String(),
			Hidden:  t.Get("hidden").Bool(),
		})
	}
	return out
}
