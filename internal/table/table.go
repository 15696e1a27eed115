package table

import "fmt"

// Column is one named field with its cells in row order.
type Column struct {
	Name   string
	Values []Value
}

// Table is a fully parsed, columnar dataset. Zero rows or zero columns
// are both valid.
type Table struct {
	Columns []Column
}

// InvalidInputError reports a table that violates the loader contract,
// detected before any profiling starts.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input table: %s", e.Reason)
}

func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Validate checks that every column has the same length. A ragged table
// means the loader contract was broken upstream.
func (t *Table) Validate() error {
	if len(t.Columns) == 0 {
		return nil
	}
	n := len(t.Columns[0].Values)
	for _, col := range t.Columns[1:] {
		if len(col.Values) != n {
			return &InvalidInputError{
				Reason: fmt.Sprintf("column %q has %d rows, expected %d", col.Name, len(col.Values), n),
			}
		}
	}
	return nil
}
