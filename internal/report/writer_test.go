package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/datasnap/datasnap/internal/profiler"
	"github.com/datasnap/datasnap/internal/table"
)

func sampleReport(t *testing.T) *profiler.Report {
	t.Helper()
	tbl, err := table.LoadCSV(strings.NewReader(`age,city
34,london
28,paris
NA,london
`), table.Options{})
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	rep, err := profiler.Profile(tbl)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	return rep
}

func TestWriteCSVFlatRecords(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}

	header := records[0]
	if header[0] != "column" || header[1] != "dtype" {
		t.Errorf("unexpected header: %v", header)
	}

	age := records[1]
	if age[0] != "age" || age[1] != "numeric" {
		t.Errorf("unexpected age record: %v", age)
	}
	if age[7] != "31" {
		t.Errorf("expected mean 31, got %q", age[7])
	}
	if age[12] != "" || age[13] != "" {
		t.Errorf("numeric column must leave categorical fields blank: %v", age)
	}

	city := records[2]
	if city[1] != "categorical" {
		t.Errorf("expected city categorical, got %q", city[1])
	}
	if city[12] != "london" || city[13] != "2" {
		t.Errorf("expected top london freq 2, got %q and %q", city[12], city[13])
	}
	if city[7] != "" || city[9] != "" {
		t.Errorf("categorical column must leave numeric fields blank: %v", city)
	}
}

func TestWriteCSVUndefinedStatsAreBlank(t *testing.T) {
	tbl, err := table.LoadCSV(strings.NewReader("lonely\n7\n"), table.Options{})
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	rep, err := profiler.Profile(tbl)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	row := records[1]
	if row[7] != "7" {
		t.Errorf("mean is defined with one value, got %q", row[7])
	}
	if row[9] != "" {
		t.Errorf("std must be blank with one value, never zero, got %q", row[9])
	}
}

func TestRenderFileSummary(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	Render(&buf, "sample.csv", rep)
	out := buf.String()

	for _, want := range []string{
		"sample.csv",
		"Total rows: 3",
		"Total columns: 2",
		"Rows with ANY null/empty: 1",
		"Rows with ALL null/empty: 0",
		"age",
		"city",
		"london",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}
