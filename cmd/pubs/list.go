package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/importer"
	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/index"
	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/publication"
)

var (
	listYear         int
	listFirstAuthor  bool
	listPeerReviewed bool
	listLimit        int
)

func init() {
	listCmd.Flags().IntVar(&listYear, "year", 0, "Only publications from this year")
	listCmd.Flags().BoolVar(&listFirstAuthor, "first-author", false, "Only first-author publications")
	listCmd.Flags().BoolVar(&listPeerReviewed, "peer-reviewed", false, "Only peer-reviewed publications")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications in display order",
	Long: `List publications from the CSV in display order.

The table is loaded into an in-memory index so filters combine freely.

Examples:
  pubs list
  pubs list --year 2020 --peer-reviewed
  pubs list --first-author --limit 10`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listEntry is one row of list output.
type listEntry struct {
	Weight       int    `json:"weight"`
	Year         int    `json:"year"`
	Authors      string `json:"authors"`
	Title        string `json:"title,omitempty"`
	DOI          string `json:"doi,omitempty"`
	PeerReviewed bool   `json:"peer_reviewed"`
	FirstAuthor  bool   `json:"first_author"`
}

func runList(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)

	recs, err := importer.Load(cfg.CSVPath(root))
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	publication.Prepare(recs, cfg.SelfAuthor)

	db, err := index.Open(":memory:")
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	if err := db.InsertAll(recs); err != nil {
		exitWithError(ExitError, "indexing publications: %v", err)
	}

	matches, err := db.List(index.Filter{
		Year:         listYear,
		FirstAuthor:  listFirstAuthor,
		PeerReviewed: listPeerReviewed,
		Limit:        listLimit,
	})
	if err != nil {
		exitWithError(ExitError, "listing publications: %v", err)
	}

	entries := make([]listEntry, len(matches))
	for i := range matches {
		m := &matches[i]
		entries[i] = listEntry{
			Weight:       m.Weight,
			Year:         m.Year,
			Authors:      m.Authors,
			Title:        m.Title,
			DOI:          m.DOI(),
			PeerReviewed: m.PeerReviewed,
			FirstAuthor:  m.IsFirstAuthor,
		}
	}

	if humanOutput {
		if len(entries) == 0 {
			fmt.Println("No matching publications")
			return nil
		}
		total, _ := db.Count()
		fmt.Printf("%d of %d publications:\n\n", len(entries), total)
		for _, e := range entries {
			fmt.Printf("  %3d. (%d) %s\n", e.Weight, e.Year, e.Authors)
			if e.Title != "" {
				fmt.Printf("       %s\n", truncateString(e.Title, TitleTruncateLen))
			}
		}
	} else {
		outputJSON(entries)
	}

	return nil
}
