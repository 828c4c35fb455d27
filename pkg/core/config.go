// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no --config is given
const DefaultConfigFile = "extconf.yaml"

// Symbol probe strategies
const (
	SymbolProbeObject = "object" // read the export table from the file
	SymbolProbeDlopen = "dlopen" // load the library on the host and look the symbol up
	SymbolProbeNone   = "none"   // presence of the file is enough
)

// Config holds extconf configuration
type Config struct {
	Target      string   `yaml:"target"`       // Build target identifier (e.g., mingw32, linux)
	Root        string   `yaml:"root"`         // Project root holding the cross/ directory
	SourceDir   string   `yaml:"source_dir"`   // Directory holding the extension's C sources
	OutputDir   string   `yaml:"output_dir"`   // Where the Makefile is written
	TargetName  string   `yaml:"target_name"`  // Extension target (e.g., nokogiri/native)
	SearchRoots []string `yaml:"search_roots"` // Extra prefixes searched before the platform defaults
	SymbolProbe string   `yaml:"symbol_probe"` // object, dlopen or none
	LogFile     string   `yaml:"log_file"`     // Probe log, relative to OutputDir
	Registry    string   `yaml:"registry"`     // Extra TOML package registry for install hints
	Debug       bool     `yaml:"debug"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Target:      DefaultTarget(),
		Root:        filepath.Join("..", ".."),
		SourceDir:   ".",
		OutputDir:   ".",
		TargetName:  "nokogiri/native",
		SymbolProbe: SymbolProbeObject,
		LogFile:     "extconf.log",
	}
}

// DefaultTarget derives the target identifier from the host OS
func DefaultTarget() string {
	if runtime.GOOS == "windows" {
		return "mingw32"
	}
	return runtime.GOOS
}

// LoadConfig loads configuration from file.
// A missing file yields the defaults; keys absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.SymbolProbe {
	case SymbolProbeObject, SymbolProbeDlopen, SymbolProbeNone:
	default:
		return fmt.Errorf("invalid symbol_probe %q (want %s, %s or %s)",
			c.SymbolProbe, SymbolProbeObject, SymbolProbeDlopen, SymbolProbeNone)
	}
	if c.TargetName == "" {
		return fmt.Errorf("target_name must not be empty")
	}
	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
