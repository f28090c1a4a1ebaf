// Package content manages the generated publication files: naming,
// purging stale output, writing front-matter blocks, and reading them
// back for consistency checks.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/publication"
)

// Ext is the extension of generated publication files.
const Ext = ".md"

// generatedName matches files produced by this tool:
// <weight>_<year>_<author-token>_<title-token>.md
var generatedName = regexp.MustCompile(`^\d+_\d+_[a-z0-9]*_[a-z0-9]*\.md$`)

// IOError reports a filesystem failure during purge or write.
type IOError struct {
	Op   string // remove, write, mkdir
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Filename derives the generated file name for a record from its
// weight, year, first author and first title word.
func Filename(rec *publication.Record) string {
	return fmt.Sprintf("%d_%d_%s_%s%s",
		rec.Weight, rec.Year,
		authorToken(rec.Authors), titleToken(rec.Title), Ext)
}

// IsGenerated reports whether name follows the generated-file naming
// convention.
func IsGenerated(name string) bool {
	return generatedName.MatchString(name)
}

// Purge removes every generated publication file from dir, leaving
// other files untouched. A missing directory counts as already clean.
// Removal stops at the first failure; files removed before it stay
// removed.
func Purge(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, &IOError{Op: "read", Path: dir, Err: err}
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !IsGenerated(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			return removed, &IOError{Op: "remove", Path: path, Err: err}
		}
		removed++
	}
	return removed, nil
}

// WriteRecord writes one publication file into dir and returns the
// file name. The block holds every retained field as a single-quoted
// key: value line in column order, then the bare weight and, when the
// record opens a year section, the year heading.
func WriteRecord(dir string, rec *publication.Record) (string, error) {
	name := Filename(rec)

	var b strings.Builder
	b.WriteString("---\n")
	for _, f := range rec.Fields {
		fmt.Fprintf(&b, "%s: '%s'\n", f.Key, quoteValue(f.Value))
	}
	fmt.Fprintf(&b, "weight: %d\n", rec.Weight)
	if rec.YearHeading != 0 {
		fmt.Fprintf(&b, "year_heading: %d\n", rec.YearHeading)
	}
	b.WriteString("---\n")

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", &IOError{Op: "write", Path: path, Err: err}
	}
	return name, nil
}

// quoteValue escapes a value for a single-quoted front-matter scalar:
// embedded single quotes are doubled.
func quoteValue(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

// authorToken is the lowercased first token of the authors string,
// split on commas and spaces, reduced to alphanumerics.
func authorToken(authors string) string {
	fields := strings.FieldsFunc(authors, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return ""
	}
	return alnumToken(fields[0])
}

// titleToken is the first alphanumeric run of the lowercased title.
// An empty title yields an empty token.
func titleToken(title string) string {
	for _, word := range strings.Fields(title) {
		if tok := alnumToken(word); tok != "" {
			return tok
		}
	}
	return ""
}

// alnumToken lowercases s and strips everything outside [a-z0-9].
func alnumToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
