package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 1

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]interface{}) (map[string]interface{}, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// 0 -> 1: early configs kept the store URL and prefs path at the top level
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]interface{}) (map[string]interface{}, error) {
			if url, ok := data["url"]; ok {
				section(data, "store")["url"] = url
				delete(data, "url")
			}
			if path, ok := data["prefsPath"]; ok {
				section(data, "prefs")["path"] = path
				delete(data, "prefsPath")
			}
			data["version"] = 1
			return data, nil
		},
	},
}

// section returns data[name] as a map, creating it when missing
func section(data map[string]interface{}, name string) map[string]interface{} {
	if m, ok := data[name].(map[string]interface{}); ok {
		return m
	}
	m := map[string]interface{}{}
	data[name] = m
	return m
}

// ParseVersionedConfig parses YAML config data with version migration
// support. Unknown keys are rejected.
func ParseVersionedConfig(data []byte) (*Config, error) {
	// First, parse as a raw map to get version
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if rawConfig == nil {
		rawConfig = map[string]interface{}{}
	}

	// Detect version (0 if not present = legacy config)
	version := 0
	if v, ok := rawConfig["version"].(int); ok {
		version = v
	}

	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}

	if version < CurrentVersion {
		var err error
		rawConfig, err = ApplyMigrations(rawConfig, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	// Re-marshal and decode strictly to get proper types
	migratedData, err := yaml.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(migratedData))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]interface{}, fromVersion int) (map[string]interface{}, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

// MarshalVersionedConfig serializes a config with version information
func MarshalVersionedConfig(cfg *Config) ([]byte, error) {
	out := *cfg
	out.Version = CurrentVersion
	return yaml.Marshal(&out)
}
