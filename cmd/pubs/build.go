package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/builder"
	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/importer"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerate the publication files from the CSV",
	Long: `Regenerate the publication content files from the publications CSV.

Previously generated files are purged, the CSV is re-read, and one
front-matter file per publication is written in display order. The
run is deterministic: the same CSV always produces the same files.

Examples:
  pubs build
  pubs build --human`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)

	res, err := builder.Build(cfg.CSVPath(root), cfg.OutputPath(root), cfg.SelfAuthor)
	if err != nil {
		var perr *importer.ParseError
		if errors.As(err, &perr) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Regenerated %s\n", cfg.OutputDir)
		fmt.Printf("  Purged:  %d stale files\n", res.Purged)
		fmt.Printf("  Written: %d publication files\n", res.Written)
	} else {
		outputJSON(res)
	}

	return nil
}
