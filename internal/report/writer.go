package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/datasnap/datasnap/internal/profiler"
)

var csvHeader = []string{
	"column", "dtype", "count", "null_count", "empty_count",
	"missing_count", "unique_count", "mean", "median", "std",
	"min", "max", "top", "top_freq",
}

// Render writes the human-readable report: the file summary block
// followed by the per-column table. Statistics that could not be
// computed render as blanks, never as zeros.
func Render(w io.Writer, path string, rep *profiler.Report) {
	fmt.Fprintf(w, "=== File summary: %s ===\n", path)
	fmt.Fprintf(w, "Total rows: %d\n", rep.Meta.RowCount)
	fmt.Fprintf(w, "Total columns: %d\n", rep.Meta.ColumnCount)
	fmt.Fprintf(w, "Rows with ANY null/empty: %d\n", rep.Meta.RowsWithMissing)
	fmt.Fprintf(w, "Rows with ALL null/empty: %d\n", rep.Meta.RowsAllMissing)
	fmt.Fprintf(w, "Duplicate rows: %d\n", rep.Meta.DuplicateRows)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Per-column summary ===")
	fmt.Fprintf(w, "%-20s %-12s %8s %8s %8s %8s %8s %10s %10s %10s %10s %10s %-15s %8s\n",
		"Column", "Dtype", "Count", "Null", "Empty", "Missing", "Unique",
		"Mean", "Median", "Std", "Min", "Max", "Top", "Freq")
	fmt.Fprintln(w, strings.Repeat("-", 160))

	for _, col := range rep.Columns {
		rec := record(col)
		fmt.Fprintf(w, "%-20s %-12s %8s %8s %8s %8s %8s %10s %10s %10s %10s %10s %-15s %8s\n",
			truncate(rec[0], 20), rec[1], rec[2], rec[3], rec[4], rec[5], rec[6],
			rec[7], rec[8], rec[9], rec[10], rec[11], truncate(rec[12], 15), rec[13])
	}
}

// WriteCSV writes one flat record per column, suitable for loading the
// summary back into any tabular tool.
func WriteCSV(w io.Writer, rep *profiler.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for _, col := range rep.Columns {
		if err := cw.Write(record(col)); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the per-column summary to path.
func WriteCSVFile(path string, rep *profiler.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, rep)
}

// record flattens one column summary. Undefined statistics become
// empty fields.
func record(col profiler.ColumnSummary) []string {
	rec := []string{
		col.Name,
		string(col.DType),
		strconv.Itoa(col.Count),
		strconv.Itoa(col.NullCount),
		strconv.Itoa(col.EmptyCount),
		strconv.Itoa(col.MissingCount),
		strconv.Itoa(col.UniqueCount),
		"", "", "", "", "", "", "",
	}

	if n := col.Numeric; n != nil && n.Valid {
		rec[7] = formatFloat(n.Mean)
		rec[8] = formatFloat(n.Median)
		if n.StdValid {
			rec[9] = formatFloat(n.Std)
		}
		rec[10] = formatFloat(n.Min)
		rec[11] = formatFloat(n.Max)
	}
	if c := col.Categorical; c != nil && c.Valid {
		rec[12] = c.Top
		rec[13] = strconv.Itoa(c.Freq)
	}

	return rec
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
