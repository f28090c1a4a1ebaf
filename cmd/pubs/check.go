package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/content"
	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/importer"
	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/publication"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the generated files match the CSV",
	Long: `Verify that the generated publication files are in sync with the CSV.

Recomputes the expected file set from the table and compares it with
the output directory, then confirms the written weights are a gap-free
1..N sequence. Exits non-zero when a rebuild is needed.

Examples:
  pubs check
  pubs check --human`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult reports drift between the CSV and the output directory.
type CheckResult struct {
	InSync     bool     `json:"in_sync"`
	Expected   int      `json:"expected"`
	Found      int      `json:"found"`
	Missing    []string `json:"missing,omitempty"`
	Unexpected []string `json:"unexpected,omitempty"`
	BadWeights []string `json:"bad_weights,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)

	recs, err := importer.Load(cfg.CSVPath(root))
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	publication.Prepare(recs, cfg.SelfAuthor)

	expected := make(map[string]bool, len(recs))
	for i := range recs {
		expected[content.Filename(&recs[i])] = true
	}

	outDir := cfg.OutputPath(root)
	found, err := content.ListGenerated(outDir)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	res := CheckResult{Expected: len(expected), Found: len(found)}

	foundSet := make(map[string]bool, len(found))
	for _, name := range found {
		foundSet[name] = true
		if !expected[name] {
			res.Unexpected = append(res.Unexpected, name)
		}
	}
	for name := range expected {
		if !foundSet[name] {
			res.Missing = append(res.Missing, name)
		}
	}
	sort.Strings(res.Missing)

	// Weights in the written files must be exactly 1..N.
	seen := make(map[int]bool, len(found))
	for _, name := range found {
		gf, err := content.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			res.BadWeights = append(res.BadWeights, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if gf.Weight < 1 || gf.Weight > len(found) || seen[gf.Weight] {
			res.BadWeights = append(res.BadWeights,
				fmt.Sprintf("%s: weight %d outside 1..%d or duplicated", name, gf.Weight, len(found)))
			continue
		}
		seen[gf.Weight] = true
	}

	res.InSync = len(res.Missing) == 0 && len(res.Unexpected) == 0 && len(res.BadWeights) == 0

	if humanOutput {
		if res.InSync {
			fmt.Printf("In sync: %d publication files match the CSV\n", res.Found)
		} else {
			fmt.Printf("Out of sync (expected %d files, found %d)\n", res.Expected, res.Found)
			for _, name := range res.Missing {
				fmt.Printf("  missing:    %s\n", name)
			}
			for _, name := range res.Unexpected {
				fmt.Printf("  unexpected: %s\n", name)
			}
			for _, msg := range res.BadWeights {
				fmt.Printf("  weight:     %s\n", msg)
			}
			fmt.Println("\nRun 'pubs build' to regenerate.")
		}
	} else {
		outputJSON(res)
	}

	if !res.InSync {
		os.Exit(ExitDrift)
	}
	return nil
}
