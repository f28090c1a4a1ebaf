// Package importer loads the publications CSV into domain records.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/publication"
)

// ParseError reports a malformed or unreadable publications table.
type ParseError struct {
	Path string
	Line int // 1-based data line, 0 when the failure is not row-specific
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parsing %s: row %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the publications CSV at path into an ordered record
// sequence. The first row is the header; column names become field
// keys. Empty cells are treated as absent. Each row must carry a
// non-empty authors cell and an integer year.
func Load(path string) ([]publication.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("reading header: %w", err)}
	}
	cols := normalizeHeader(header)

	if err := requireColumns(cols); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var recs []publication.Record
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Err: err}
		}

		rec, err := rowToRecord(cols, row)
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Err: err}
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// normalizeHeader lowercases and trims column names, stripping a UTF-8
// BOM from the first one if present.
func normalizeHeader(header []string) []string {
	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return cols
}

func requireColumns(cols []string) error {
	var hasAuthors, hasYear bool
	for _, c := range cols {
		switch c {
		case publication.AuthorsColumn:
			hasAuthors = true
		case publication.YearColumn:
			hasYear = true
		}
	}
	if !hasAuthors {
		return errors.New("missing required column 'authors'")
	}
	if !hasYear {
		return errors.New("missing required column 'year'")
	}
	return nil
}

// rowToRecord converts one CSV row to a record, keeping non-empty cells
// in column order.
func rowToRecord(cols, row []string) (publication.Record, error) {
	var rec publication.Record

	for i, col := range cols {
		val := strings.TrimSpace(row[i])
		if val == "" {
			continue
		}
		rec.Fields = append(rec.Fields, publication.Field{Key: col, Value: val})

		switch col {
		case publication.AuthorsColumn:
			rec.Authors = val
		case publication.TitleColumn:
			rec.Title = val
		case publication.YearColumn:
			year, err := strconv.Atoi(val)
			if err != nil {
				return rec, fmt.Errorf("invalid year %q", val)
			}
			rec.Year = year
		case publication.MarkerColumn, publication.LegacyMarkerColumn:
			rec.PeerReviewed = true
		}
	}

	if rec.Authors == "" {
		return rec, errors.New("missing required field 'authors'")
	}
	if rec.Year == 0 {
		return rec, errors.New("missing required field 'year'")
	}

	return rec, nil
}
