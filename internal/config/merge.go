package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names.
const (
	keyVersion = "version"
	keyAPI     = "api"
	keyUI      = "ui"
	keyLogging = "logging"
)

// knownTopLevelKeys lists the YAML keys that correspond to Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyVersion: true,
	keyAPI:     true,
	keyUI:      true,
	keyLogging: true,
}

// MergeYAML loads a YAML file and merges its top-level sections onto target.
// Fields present in a section override the target; absent fields and absent
// sections keep their current values.
func MergeYAML(target *Config, path string) error {
	if target == nil {
		return errors.New("nil target *Config in MergeYAML")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", path, err)
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = mergeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying config section %q from %s: %w", key, path, err)
		}
	}

	return nil
}

// mergeSection decodes node onto the matching field of target. Decoding into
// the existing value keeps fields the section does not mention.
func mergeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyVersion:
		return node.Decode(&target.Version)
	case keyAPI:
		return node.Decode(&target.API)
	case keyUI:
		return node.Decode(&target.UI)
	case keyLogging:
		return node.Decode(&target.Logging)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}
