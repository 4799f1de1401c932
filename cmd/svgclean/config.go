package main

import (
	"fmt"
	"os"

	"github.com/tdewolff/svgclean"
	"go.yaml.in/yaml/v4"
)

// Config is the format of the configuration file. Cleaning options sit at the top level next to the file selection options.
type Config struct {
	svgclean.Cleaner `yaml:",inline"`

	Recursive bool     `yaml:"recursive"`
	All       bool     `yaml:"all"`
	Match     []string `yaml:"match"`
	Exclude   []string `yaml:"exclude"`
	Preserve  []string `yaml:"preserve"`
}

// parseConfig parses a YAML configuration, keys that are absent keep their default value.
func parseConfig(b []byte) (Config, error) {
	cfg := Config{Cleaner: *svgclean.Default}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadConfig(filename string) (Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("read configuration: %w", err)
	}
	cfg, err := parseConfig(b)
	if err != nil {
		return Config{}, fmt.Errorf("parse configuration %q: %w", filename, err)
	}
	return cfg, nil
}
