package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/config"
	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/crossref"
)

func init() {
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <doi>",
	Short: "Fetch publication metadata for a DOI from Crossref",
	Long: `Fetch publication metadata for a DOI from the Crossref works API.

The output carries the fields of a publications CSV row (authors,
title, year, journal, doi), with authors formatted in table style.
Set crossref_mailto in pubs.yml (or CROSSREF_MAILTO) to use the
Crossref polite pool.

Examples:
  pubs lookup 10.1037/xlm0000687
  pubs lookup 10.1037/xlm0000687 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

// lookupRow is a CSV-ready publication row built from Crossref metadata.
type lookupRow struct {
	Authors string `json:"authors"`
	Title   string `json:"title"`
	Year    int    `json:"year"`
	Journal string `json:"journal,omitempty"`
	DOI     string `json:"doi"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	var opts []crossref.ClientOption

	// The site config is optional here: lookup is useful before a
	// table exists at all.
	if cwd, err := os.Getwd(); err == nil {
		if root, err := config.FindSite(cwd); err == nil {
			if cfg, err := config.Load(root); err == nil && cfg.CrossrefMailto != "" {
				opts = append(opts, crossref.WithMailto(cfg.CrossrefMailto))
			}
		}
	}

	client := crossref.NewClient(opts...)
	work, err := client.Work(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, crossref.ErrNotFound) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	row := lookupRow{
		Authors: work.AuthorsString(),
		Title:   work.Title,
		Year:    work.Year,
		Journal: work.Journal,
		DOI:     work.DOI,
	}

	if humanOutput {
		fmt.Printf("Authors: %s\n", row.Authors)
		fmt.Printf("Title:   %s\n", row.Title)
		fmt.Printf("Year:    %d\n", row.Year)
		if row.Journal != "" {
			fmt.Printf("Journal: %s\n", row.Journal)
		}
		fmt.Printf("DOI:     %s\n", row.DOI)
	} else {
		outputJSON(row)
	}

	return nil
}
