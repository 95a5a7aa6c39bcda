// Package config loads the optional server configuration file. Flags given
// on the command line take precedence; the file only fills in what the
// flags left at their defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Root is the directory scanned for repositories.
	Root string `yaml:"root"`
	// Listen is the HTTP listen address, e.g. ":8080".
	Listen string `yaml:"listen"`
	// PageSize is the number of commits per log page.
	PageSize int `yaml:"page_size"`
}

func Default() Config {
	return Config{Root: ".", Listen: ":8080", PageSize: 10}
}

// Load reads a YAML config file over the defaults. A missing path (empty
// string) just returns the defaults; a named file that does not exist is an
// error, since the caller asked for it explicitly.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.PageSize <= 0 {
		return Config{}, fmt.Errorf("config %s: page_size must be positive", path)
	}
	return cfg, nil
}
