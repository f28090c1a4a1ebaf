// Package publication defines the domain types for publication records
// and the transforms that derive their display fields.
package publication

import "strings"

// Column names with special meaning in the publications table.
const (
	AuthorsColumn = "authors"
	TitleColumn   = "title"
	YearColumn    = "year"
	DOIColumn     = "doi"

	// MarkerColumn flags a peer-reviewed publication. Presence of a value
	// is what matters, not the value itself.
	MarkerColumn = "peer_reviewed_article"
	// LegacyMarkerColumn is the older name for the same flag, still
	// accepted on input.
	LegacyMarkerColumn = "peer_reviewed_paper"
)

// Field is one retained cell from the publications table.
type Field struct {
	Key   string
	Value string
}

// Record is one publication row plus the derived display fields.
type Record struct {
	// Fields holds every non-empty cell of the source row, in column
	// order. Empty cells are absent rather than stored as "".
	Fields []Field

	// Parsed from Fields at load time.
	Authors      string
	Title        string
	Year         int
	PeerReviewed bool

	// Derived before emission.
	IsFirstAuthor bool
	Weight        int // 1-based display rank, 1 = topmost
	YearHeading   int // Year when the record starts a new year section, 0 otherwise
}

// Get returns the value of the named field.
func (r *Record) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces the value of the named field. A missing key is appended.
func (r *Record) Set(key, value string) {
	for i, f := range r.Fields {
		if f.Key == key {
			r.Fields[i].Value = value
			return
		}
	}
	r.Fields = append(r.Fields, Field{Key: key, Value: value})
}

// DOI returns the record's doi field, or "" if absent.
func (r *Record) DOI() string {
	doi, _ := r.Get(DOIColumn)
	return doi
}

// NormalizeTitle ensures a non-empty title ends in terminal punctuation.
// An empty title stays empty; titles already ending in '.', '?' or '!'
// are returned unchanged.
func NormalizeTitle(title string) string {
	if title == "" {
		return title
	}
	switch title[len(title)-1] {
	case '.', '?', '!':
		return title
	}
	return title + "."
}

// NormalizeTitles applies NormalizeTitle to every record, updating both
// the typed Title and the underlying title field.
func NormalizeTitles(recs []Record) {
	for i := range recs {
		norm := NormalizeTitle(recs[i].Title)
		if norm == recs[i].Title {
			continue
		}
		recs[i].Title = norm
		recs[i].Set(TitleColumn, norm)
	}
}

// Annotate sets IsFirstAuthor on every record: true when the authors
// string starts with the configured self-author name.
func Annotate(recs []Record, selfAuthor string) {
	for i := range recs {
		recs[i].IsFirstAuthor = selfAuthor != "" &&
			strings.HasPrefix(recs[i].Authors, selfAuthor)
	}
}
