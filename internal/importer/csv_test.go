package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "publications.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test CSV: %v", err)
	}
	return path
}

func TestLoad_ValidTable(t *testing.T) {
	path := writeCSV(t, `authors,title,year,journal,doi,preprint,peer_reviewed_article
"Taylor, J.",A study,2020,J. Mem. Lang.,10.1/abc,,x
"Smith, A.",Another one,2020,,,https://psyarxiv.com/xyz,
`)

	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Load() returned %d records, want 2", len(recs))
	}

	first := recs[0]
	if first.Authors != "Taylor, J." {
		t.Errorf("Authors = %q, want %q", first.Authors, "Taylor, J.")
	}
	if first.Year != 2020 {
		t.Errorf("Year = %d, want 2020", first.Year)
	}
	if !first.PeerReviewed {
		t.Error("PeerReviewed = false, want true (marker cell non-empty)")
	}
	if first.DOI() != "10.1/abc" {
		t.Errorf("DOI() = %q, want %q", first.DOI(), "10.1/abc")
	}

	// Empty cells are absent, not stored as "".
	if _, ok := first.Get("preprint"); ok {
		t.Error("empty preprint cell was retained")
	}

	second := recs[1]
	if second.PeerReviewed {
		t.Error("PeerReviewed = true for empty marker cell")
	}
	if val, ok := second.Get("preprint"); !ok || val != "https://psyarxiv.com/xyz" {
		t.Errorf("Get(preprint) = %q (present=%v), want link", val, ok)
	}

	// Fields keep column order.
	wantKeys := []string{"authors", "title", "year", "journal", "doi", "peer_reviewed_article"}
	if len(first.Fields) != len(wantKeys) {
		t.Fatalf("first record has %d fields, want %d", len(first.Fields), len(wantKeys))
	}
	for i, k := range wantKeys {
		if first.Fields[i].Key != k {
			t.Errorf("Fields[%d].Key = %q, want %q", i, first.Fields[i].Key, k)
		}
	}
}

func TestLoad_LegacyMarkerColumn(t *testing.T) {
	path := writeCSV(t, `authors,year,peer_reviewed_paper
"Taylor, J.",2019,yes
`)

	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !recs[0].PeerReviewed {
		t.Error("PeerReviewed = false, want true via peer_reviewed_paper")
	}
}

func TestLoad_HeaderNormalization(t *testing.T) {
	path := writeCSV(t, "\ufeffAuthors, Year \n\"Taylor, J.\",2020\n")

	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if recs[0].Year != 2020 {
		t.Errorf("Year = %d, want 2020", recs[0].Year)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing authors column",
			content: "title,year\nA study,2020\n",
		},
		{
			name:    "missing year column",
			content: "authors,title\n\"Taylor, J.\",A study\n",
		},
		{
			name:    "ragged row",
			content: "authors,title,year\n\"Taylor, J.\",A study\n",
		},
		{
			name:    "non-integer year",
			content: "authors,year\n\"Taylor, J.\",twenty-twenty\n",
		},
		{
			name:    "empty authors cell",
			content: "authors,year\n,2020\n",
		},
		{
			name:    "empty year cell",
			content: "authors,year\n\"Taylor, J.\",\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("Load() error = %T, want *ParseError", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("Load() succeeded for missing file")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("Load() error = %T, want *ParseError", err)
	}
}

func TestLoad_EmptyTable(t *testing.T) {
	path := writeCSV(t, "authors,year\n")

	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Load() returned %d records, want 0", len(recs))
	}
}

func TestLoad_RowCountPreserved(t *testing.T) {
	// Rows with missing optional fields still produce a record each.
	path := writeCSV(t, `authors,title,year,doi
"Taylor, J.",,2021,
"Smith, A.",A paper,2020,10.1/a
"Brown, C.",,2019,
`)

	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("Load() returned %d records, want 3", len(recs))
	}
	if recs[0].Title != "" {
		t.Errorf("Title = %q, want empty", recs[0].Title)
	}
}
