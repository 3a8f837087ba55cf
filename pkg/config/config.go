// Package config loads augur's configuration from TOML, YAML or JSON
// files, merged under CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds every option of a run.
type Config struct {
	// Analysis settings.
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// File selection.
	Include []string `koanf:"include" toml:"include"`
	Exclude []string `koanf:"exclude" toml:"exclude"`

	// Output settings.
	Output OutputConfig `koanf:"output" toml:"output"`
}

// AnalysisConfig controls the runner and the parser.
type AnalysisConfig struct {
	// Worker count; zero means detected cores minus one, minimum one.
	Jobs int `koanf:"jobs" toml:"jobs"`
	// Forced language; empty means guessing.
	Language string `koanf:"language" toml:"language"`
	// Respect .gitignore files while walking directories.
	Gitignore bool `koanf:"gitignore" toml:"gitignore"`
}

// OutputConfig controls the formatters.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"` // json, toml, yaml, cbor
	Pretty bool   `koanf:"pretty" toml:"pretty"`
	Dir    string `koanf:"dir" toml:"dir"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Jobs:      0,
			Gitignore: true,
		},
		Output: OutputConfig{Format: "json"},
	}
}

// Jobs resolves the effective worker count.
func (c *Config) Jobs() int {
	if c.Analysis.Jobs > 0 {
		return c.Analysis.Jobs
	}
	jobs := runtime.NumCPU() - 1
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}

// discoveryNames are probed in order when no config path is given.
var discoveryNames = []string{".augur.toml", ".augur.yaml", ".augur.yml", ".augur.json"}

// Load reads a config file, or discovers one next to the working
// directory when path is empty. A missing discovered file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		for _, name := range discoveryNames {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	k := koanf.New(".")
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ktoml.Parser(), nil
	case ".yaml", ".yml":
		return kyaml.Parser(), nil
	case ".json":
		return kjson.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
}
