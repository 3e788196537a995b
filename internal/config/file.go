package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
)

// loadFile layers the config file over c. A missing file is only an error
// when it was named explicitly.
func (c *Config) loadFile(explicit bool) error {
	if c.ConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", c.ConfigFile, err)
	}

	if err := Decode(data, c); err != nil {
		return fmt.Errorf("config file %s: %w", c.ConfigFile, err)
	}
	return nil
}

// Decode overlays the YAML document in data onto c. Unknown keys are
// rejected.
func Decode(data []byte, c *Config) error {
	if err := yaml.UnmarshalWithOptions(data, c, yaml.Strict()); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
