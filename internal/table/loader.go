package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultNullTokens matches the usual spellings of an explicit null in
// CSV exports. Comparison is against the trimmed cell.
var DefaultNullTokens = []string{"NA", "N/A", "null", "NULL", "NaN", "nan", "None"}

// Options controls how a CSV stream becomes a Table.
type Options struct {
	// NullTokens are trimmed cell contents treated as explicit null.
	// Nil means DefaultNullTokens.
	NullTokens []string

	// MaxRows limits how many data rows are read. 0 means no limit.
	MaxRows int
}

// LoadCSV reads a CSV stream with a header row into a Table. Each cell
// is tagged exactly once here: null token, empty (after trimming),
// number, or text. Ragged records surface as InvalidInputError.
func LoadCSV(r io.Reader, opts Options) (*Table, error) {
	nullSet := make(map[string]struct{})
	tokens := opts.NullTokens
	if tokens == nil {
		tokens = DefaultNullTokens
	}
	for _, tok := range tokens {
		nullSet[tok] = struct{}{}
	}

	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &Table{Columns: make([]Column, len(headers))}
	for i, h := range headers {
		t.Columns[i].Name = h
	}

	rows := 0
	for {
		if opts.MaxRows > 0 && rows >= opts.MaxRows {
			break
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				return nil, &InvalidInputError{Reason: err.Error()}
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) != len(headers) {
			return nil, &InvalidInputError{
				Reason: fmt.Sprintf("row %d has %d fields, expected %d", rows+1, len(record), len(headers)),
			}
		}
		for i, cell := range record {
			t.Columns[i].Values = append(t.Columns[i].Values, TagCell(cell, nullSet))
		}
		rows++
	}

	return t, nil
}

// LoadCSVFile opens path and loads it with LoadCSV.
func LoadCSVFile(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return LoadCSV(f, opts)
}

// TagCell classifies one raw cell. Trimming applies to the null-token
// and emptiness checks and to numeric parsing; a cell kept as text
// keeps its original spelling.
func TagCell(raw string, nullSet map[string]struct{}) Value {
	trimmed := strings.TrimSpace(raw)
	if _, ok := nullSet[trimmed]; ok {
		return NullValue()
	}
	if trimmed == "" {
		return EmptyValue()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberValue(n, raw)
	}
	return TextValue(raw)
}
