package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/config"
	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/importer"
	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/pdfmeta"
)

func init() {
	rootCmd.AddCommand(pdfDOICmd)
}

var pdfDOICmd = &cobra.Command{
	Use:   "pdf-doi <file.pdf>",
	Short: "Extract the DOI from a PDF and match it against the CSV",
	Long: `Extract the DOI from a publication PDF.

When run inside a site, the DOI is also matched against the
publications CSV to show whether the paper is already listed.

Examples:
  pubs pdf-doi preprint.pdf
  pubs pdf-doi preprint.pdf --human`,
	Args: cobra.ExactArgs(1),
	RunE: runPDFDOI,
}

// pdfDOIResult reports an extracted DOI and any matching table row.
type pdfDOIResult struct {
	File    string `json:"file"`
	DOI     string `json:"doi,omitempty"`
	Found   bool   `json:"found"`
	Matched string `json:"matched_authors,omitempty"` // authors of the matching CSV row
}

func runPDFDOI(cmd *cobra.Command, args []string) error {
	path := args[0]

	doi, err := pdfmeta.ExtractDOI(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}

	res := pdfDOIResult{File: path, DOI: doi, Found: doi != ""}

	if doi != "" {
		if authors, ok := matchCSVByDOI(doi); ok {
			res.Matched = authors
		}
	}

	if humanOutput {
		if !res.Found {
			fmt.Printf("No DOI found in %s\n", path)
		} else {
			fmt.Printf("DOI: %s\n", res.DOI)
			if res.Matched != "" {
				fmt.Printf("Already listed: %s\n", res.Matched)
			} else {
				fmt.Println("Not in the publications table")
			}
		}
	} else {
		outputJSON(res)
	}

	if !res.Found {
		os.Exit(ExitDataError)
	}
	return nil
}

// matchCSVByDOI looks for a publication row with the given DOI. It is
// best-effort: outside a site, or with an unreadable table, there is
// simply no match.
func matchCSVByDOI(doi string) (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	root, err := config.FindSite(cwd)
	if err != nil {
		return "", false
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "", false
	}
	recs, err := importer.Load(cfg.CSVPath(root))
	if err != nil {
		return "", false
	}

	for i := range recs {
		if strings.EqualFold(recs[i].DOI(), doi) {
			return recs[i].Authors, true
		}
	}
	return "", false
}
