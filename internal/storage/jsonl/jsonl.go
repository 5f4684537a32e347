// Package jsonl reads raw batch files: one JSON object per line.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/haldis/badgeflow/internal/model"
	"github.com/haldis/badgeflow/internal/storage"
)

// Scanner buffer cap: a single batch line can carry thousands of scans.
const maxLineSize = 4 * 1024 * 1024

// Reader reads model.RawBatch records from a JSONL file.
type Reader struct {
	path string
}

// NewReader creates a Reader for the given path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// ReadBatches parses the file line by line, preserving input order. Blank
// lines are skipped. A missing file is storage.ErrMissingInput; a malformed
// line is fatal (the source is machine-written, corruption means truncation).
func (r *Reader) ReadBatches(_ context.Context) ([]model.RawBatch, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(storage.ErrMissingInput, "raw batches %s", r.path)
		}
		return nil, errors.Wrapf(err, "open %s", r.path)
	}
	defer f.Close()

	var batches []model.RawBatch
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var b model.RawBatch
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, errors.Wrapf(err, "%s line %d", r.path, line)
		}
		batches = append(batches, b)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "scan %s", r.path)
	}
	return batches, nil
}
