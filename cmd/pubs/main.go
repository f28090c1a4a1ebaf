// Package main provides the pubs CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubs",
	Short: "Publication list generator for an academic homepage",
	Long: `pubs maintains the publication section of a static academic homepage.

The source of truth is a CSV of publications. pubs derives a
deterministic display order and regenerates one front-matter content
file per publication for the site renderer, with query and metadata
helpers on top of the same table. Commands output JSON by default for
easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustFindSite locates the site root or exits.
func mustFindSite() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.FindSite(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustLoadConfig loads the site configuration or exits.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}
