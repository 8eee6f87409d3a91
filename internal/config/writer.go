package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteDefault writes the default configuration to path, refusing to overwrite.
func WriteDefault(path string) error {
	if path == "" {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	return Write(path, Default())
}

// Write writes the given config to path.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
