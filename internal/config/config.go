// Package config handles site configuration and site-root discovery.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the site configuration stored in pubs.yml at the site root.
type Config struct {
	CSV            string `yaml:"csv,omitempty"`             // publications table, relative to the site root
	OutputDir      string `yaml:"output_dir,omitempty"`      // generated content directory, relative to the site root
	SelfAuthor     string `yaml:"self_author"`               // site owner's name as it appears in the authors column
	CrossrefMailto string `yaml:"crossref_mailto,omitempty"` // contact address for the Crossref polite pool
}

const (
	// ConfigFile marks the site root.
	ConfigFile = "pubs.yml"

	// DefaultCSV is the publications table path when csv is unset.
	DefaultCSV = "data/publications.csv"
	// DefaultOutputDir is the generated content path when output_dir is unset.
	DefaultOutputDir = "content/publications"

	// RootEnv overrides site-root discovery.
	RootEnv = "PUBS_ROOT"
)

// ConfigPath returns the path to pubs.yml from a site root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// IsSite checks whether the given directory is a site root.
func IsSite(root string) bool {
	info, err := os.Stat(ConfigPath(root))
	return err == nil && !info.IsDir()
}

// FindSite walks up from start to find the site root. A .env file in
// the start directory is loaded first, and the PUBS_ROOT environment
// variable short-circuits the walk.
func FindSite(start string) (string, error) {
	// Optional; a missing .env is fine.
	_ = godotenv.Load(filepath.Join(start, ".env"))

	if root := os.Getenv(RootEnv); root != "" {
		if !IsSite(root) {
			return "", fmt.Errorf("%s=%s is not a site root (no %s)", RootEnv, root, ConfigFile)
		}
		return root, nil
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsSite(abs) {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not inside a site (no %s found)", ConfigFile)
		}
		abs = parent
	}
}

// Load reads and validates the configuration at the site root,
// applying defaults for unset paths.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.CSV == "" {
		cfg.CSV = DefaultCSV
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.SelfAuthor == "" {
		return nil, fmt.Errorf("%s: self_author is not set", ConfigPath(root))
	}

	return &cfg, nil
}

// CSVPath returns the absolute path of the publications table.
func (c *Config) CSVPath(root string) string {
	return filepath.Join(root, c.CSV)
}

// OutputPath returns the absolute path of the generated content
// directory.
func (c *Config) OutputPath(root string) string {
	return filepath.Join(root, c.OutputDir)
}
