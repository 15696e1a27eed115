package history

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/datasnap/datasnap/internal/profiler"
	"github.com/datasnap/datasnap/internal/table"
)

func testReport(t *testing.T) *profiler.Report {
	t.Helper()
	tbl, err := table.LoadCSV(strings.NewReader("a,b\n1,x\n2,\n"), table.Options{})
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	rep, err := profiler.Profile(tbl)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	return rep
}

func TestSaveAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	rep := testReport(t)
	if err := store.Save("first.csv", rep); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("second.csv", rep); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	// Newest first.
	if runs[0].Source != "second.csv" {
		t.Errorf("expected newest run first, got %q", runs[0].Source)
	}
	if runs[0].RowCount != 2 || runs[0].ColumnCount != 2 {
		t.Errorf("expected 2x2 dimensions, got %dx%d", runs[0].RowCount, runs[0].ColumnCount)
	}
	if runs[0].RowsWithMissing != 1 {
		t.Errorf("expected 1 row with missing, got %d", runs[0].RowsWithMissing)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("expected a parsed timestamp")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Save("a.csv", testReport(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store.Close()

	// Reopening an existing database must keep its rows.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	runs, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run after reopen, got %d", len(runs))
	}
}
