// Package config loads calc settings from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	projectConfigName = "calc.yaml"
	homeConfigName    = "config.yaml"
)

// Config is the shape of a calc config file.
type Config struct {
	Verbose   bool      `yaml:"verbose"`
	Prompt    string    `yaml:"prompt"`
	Format    string    `yaml:"format"`
	History   History   `yaml:"history"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// History configures the evaluation history.
type History struct {
	// Path is a SQLite database file. Empty keeps history in memory.
	Path string `yaml:"path"`
	// Limit is the number of entries the REPL history command lists.
	Limit int `yaml:"limit"`
	// MaxEntries prunes a SQLite history to this many entries. Zero keeps
	// everything.
	MaxEntries int `yaml:"max_entries"`
}

// Telemetry configures span export. An empty Endpoint disables tracing.
type Telemetry struct {
	Endpoint string `yaml:"endpoint"`
	Insecure bool   `yaml:"insecure"`
	Service  string `yaml:"service"`
}

// Default returns the settings used when no config file sets them.
func Default() Config {
	return Config{
		Prompt: ">>> ",
		Format: "%g",
		History: History{
			Limit: 20,
		},
		Telemetry: Telemetry{
			Service: "calc",
		},
	}
}

// Discover resolves the config file location with first-match semantics.
// found is false if no file exists and no explicit path was given. The home
// directory is only consulted without an explicit path, and is skipped if it
// cannot be determined.
func Discover(explicitPath string) (path string, found bool, err error) {
	if strings.TrimSpace(explicitPath) != "" {
		return DiscoverFrom(explicitPath, "", "")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("resolve working directory: %w", err)
	}
	homeDir, _ := os.UserHomeDir()
	return DiscoverFrom(explicitPath, cwd, homeDir)
}

// DiscoverFrom is Discover with explicit working and home directories.
func DiscoverFrom(explicitPath, cwd, homeDir string) (string, bool, error) {
	explicit := strings.TrimSpace(explicitPath)
	var candidates []string
	if explicit != "" {
		candidates = []string{filepath.Clean(explicit)}
	} else {
		candidates = []string{filepath.Join(cwd, projectConfigName)}
		if homeDir != "" {
			candidates = append(candidates, filepath.Join(homeDir, ".calc", homeConfigName))
		}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if errors.Is(err, os.ErrNotExist) || err == nil {
			if explicit != "" {
				return "", false, fmt.Errorf("config file %q not found", candidate)
			}
			continue
		}
		return "", false, fmt.Errorf("checking config path %q: %w", candidate, err)
	}
	return "", false, nil
}

// Load reads a config file over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must not be negative, got %d", c.History.MaxEntries)
	}
	// A usable format consumes exactly one float64 without complaint.
	if out := fmt.Sprintf(c.Format, 1.5); strings.Contains(out, "%!") {
		return fmt.Errorf("format %q must contain exactly one number verb", c.Format)
	}
	return nil
}
