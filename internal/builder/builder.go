// Package builder runs the full regeneration pipeline: purge stale
// output, load the CSV, derive display fields, and emit one file per
// publication.
package builder

import (
	"os"

	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/content"
	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/importer"
	"github.com/JackEdTaylor/JackEdTaylor.github.io/internal/publication"
)

// Result summarizes a build run.
type Result struct {
	Purged  int      `json:"purged"`
	Written int      `json:"written"`
	Files   []string `json:"files"`
}

// Build regenerates the publication files in outDir from the CSV at
// csvPath. The run is all-or-nothing per step: a parse or write
// failure aborts immediately, leaving whatever was already purged or
// written on disk. Re-running after fixing the input restores a
// consistent state.
func Build(csvPath, outDir, selfAuthor string) (*Result, error) {
	purged, err := content.Purge(outDir)
	if err != nil {
		return nil, err
	}

	recs, err := importer.Load(csvPath)
	if err != nil {
		return nil, err
	}

	publication.Prepare(recs, selfAuthor)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, &content.IOError{Op: "mkdir", Path: outDir, Err: err}
	}

	res := &Result{Purged: purged, Files: make([]string, 0, len(recs))}
	for i := range recs {
		name, err := content.WriteRecord(outDir, &recs[i])
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, name)
		res.Written++
	}
	return res, nil
}
