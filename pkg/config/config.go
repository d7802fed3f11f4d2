package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/discokit/disco-gen/pkg/discovery"
)

// Config represents the persistent generation settings for a project.
// Every field is optional; command-line flags override whatever is set
// here.
type Config struct {
	// Package overrides the generated package name. Empty derives the
	// name from the document's service name.
	Package string `yaml:"package"`
	// Out is the file or directory the generated source is written to.
	Out string `yaml:"out"`
	// RuntimeImport overrides the import path of the dispatch package
	// generated units depend on.
	RuntimeImport string `yaml:"runtimeImport"`
	// DirectoryURL is the service index interactive mode lists.
	DirectoryURL string `yaml:"directoryUrl"`
	// AllVersions includes non-preferred service versions in interactive
	// listings. By default only preferred versions are listed.
	AllVersions bool `yaml:"allVersions"`
}

// ApplyDefaults fills the zero values every consumer assumes are set.
func (c *Config) ApplyDefaults() {
	if c.DirectoryURL == "" {
		c.DirectoryURL = discovery.DefaultDirectoryURL
	}
}

// Load loads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if cfg.Out != "" && !filepath.IsAbs(cfg.Out) {
		abs, _ := filepath.Abs(cfg.Out)
		cfg.Out = abs
	}
	return &cfg, nil
}
