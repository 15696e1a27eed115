package profiler

import (
	"runtime"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/datasnap/datasnap/internal/table"
)

// FileMeta is the whole-file portion of a report.
type FileMeta struct {
	RowCount        int
	ColumnCount     int
	RowsWithMissing int // rows where at least one cell is null/empty
	RowsAllMissing  int // rows where every cell is null/empty
	DuplicateRows   int // rows repeating an earlier row verbatim
}

// Report is the complete output of one profiling run: one summary per
// column, in input order, plus the file metadata.
type Report struct {
	Columns []ColumnSummary
	Meta    FileMeta
}

// Config tunes profiling. Workers bounds how many columns are profiled
// concurrently; 0 means NumCPU.
type Config struct {
	Workers int
}

// Profile runs the profiler with default configuration.
func Profile(t *table.Table) (*Report, error) {
	return ProfileWithConfig(t, Config{})
}

// ProfileWithConfig validates the table, profiles every column, and
// aggregates file-level metadata. The input is never mutated, and the
// only error is a contract violation (ragged columns) detected before
// any statistics are computed.
func ProfileWithConfig(t *table.Table, cfg Config) (*Report, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	report := &Report{
		Columns: make([]ColumnSummary, len(t.Columns)),
		Meta: FileMeta{
			RowCount:    t.RowCount(),
			ColumnCount: t.ColumnCount(),
		},
	}

	// Columns are independent, so wide tables fan out. Results land at
	// their own index, which keeps input column order in the report.
	if workers > 1 && len(t.Columns) > 1 {
		var g errgroup.Group
		g.SetLimit(workers)
		for i := range t.Columns {
			i := i
			g.Go(func() error {
				report.Columns[i] = ProfileColumn(t.Columns[i])
				return nil
			})
		}
		g.Wait()
	} else {
		for i := range t.Columns {
			report.Columns[i] = ProfileColumn(t.Columns[i])
		}
	}

	aggregateRows(t, &report.Meta)
	return report, nil
}

// aggregateRows makes one pass over the rows for the metadata that no
// single column can see: missing-row counts and duplicate rows.
func aggregateRows(t *table.Table, meta *FileMeta) {
	if meta.RowCount == 0 || meta.ColumnCount == 0 {
		return
	}

	seen := make(map[uint64]struct{}, meta.RowCount)
	var buf []byte

	for row := 0; row < meta.RowCount; row++ {
		anyMissing := false
		allMissing := true
		buf = buf[:0]

		for col := range t.Columns {
			v := t.Columns[col].Values[row]
			if v.IsMissing() {
				anyMissing = true
			} else {
				allMissing = false
			}
			buf = append(buf, byte(v.Kind))
			buf = append(buf, v.Str...)
			buf = append(buf, 0)
		}

		if anyMissing {
			meta.RowsWithMissing++
		}
		if allMissing {
			meta.RowsAllMissing++
		}

		h := xxh3.Hash(buf)
		if _, dup := seen[h]; dup {
			meta.DuplicateRows++
		} else {
			seen[h] = struct{}{}
		}
	}
}
