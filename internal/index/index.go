// Package index provides an ephemeral SQLite index over publication
// records for query commands. The index is rebuilt from the CSV on
// every use and is never the source of truth.
package index

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/publication"
)

// DB wraps a SQLite index connection.
type DB struct {
	db *sql.DB
}

// Open creates the index schema at the given path. Use ":memory:" for
// a one-shot query index.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the index connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS publications (
			weight INTEGER PRIMARY KEY,
			year INTEGER NOT NULL,
			authors TEXT NOT NULL,
			title TEXT,
			doi TEXT,
			peer_reviewed INTEGER NOT NULL,
			first_author INTEGER NOT NULL,
			year_heading INTEGER NOT NULL,
			fields_json TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year);
	`
	_, err := db.Exec(schema)
	return err
}

// InsertAll indexes all records in one transaction. Records must
// already carry their display fields (weight, year heading).
func (d *DB) InsertAll(recs []publication.Record) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO publications
			(weight, year, authors, title, doi, peer_reviewed, first_author, year_heading, fields_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range recs {
		rec := &recs[i]
		fieldsJSON, err := json.Marshal(rec.Fields)
		if err != nil {
			return fmt.Errorf("encoding fields for weight %d: %w", rec.Weight, err)
		}
		_, err = stmt.Exec(rec.Weight, rec.Year, rec.Authors, rec.Title, rec.DOI(),
			boolToInt(rec.PeerReviewed), boolToInt(rec.IsFirstAuthor),
			rec.YearHeading, string(fieldsJSON))
		if err != nil {
			return fmt.Errorf("inserting weight %d: %w", rec.Weight, err)
		}
	}

	return tx.Commit()
}

// Filter narrows a List query. Zero values leave a dimension
// unfiltered.
type Filter struct {
	Year         int
	FirstAuthor  bool
	PeerReviewed bool
	Limit        int
}

// List returns indexed records in display order (by weight).
func (d *DB) List(f Filter) ([]publication.Record, error) {
	query := `SELECT weight, year, authors, title, peer_reviewed, first_author, year_heading, fields_json
		FROM publications`

	var conds []string
	var args []any
	if f.Year != 0 {
		conds = append(conds, "year = ?")
		args = append(args, f.Year)
	}
	if f.FirstAuthor {
		conds = append(conds, "first_author = 1")
	}
	if f.PeerReviewed {
		conds = append(conds, "peer_reviewed = 1")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY weight"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var recs []publication.Record
	for rows.Next() {
		var rec publication.Record
		var title sql.NullString
		var peerReviewed, firstAuthor int
		var fieldsJSON string

		err := rows.Scan(&rec.Weight, &rec.Year, &rec.Authors, &title,
			&peerReviewed, &firstAuthor, &rec.YearHeading, &fieldsJSON)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		rec.Title = title.String
		rec.PeerReviewed = peerReviewed == 1
		rec.IsFirstAuthor = firstAuthor == 1
		if err := json.Unmarshal([]byte(fieldsJSON), &rec.Fields); err != nil {
			return nil, fmt.Errorf("decoding fields for weight %d: %w", rec.Weight, err)
		}

		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	return recs, nil
}

// Count returns the number of indexed records.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM publications").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting publications: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
