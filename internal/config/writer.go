package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Save writes the configuration to a YAML file with owner-only
// permissions, since it may contain credentials.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	header := []byte("# ReviewPulse configuration.\n# Values can be overridden with REVIEWPULSE_<SECTION>_<KEY> environment variables.\n")
	if err := os.WriteFile(path, append(header, data...), 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Exists reports whether a config file is already present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
