package profiler

import (
	"math"
	"sort"

	"github.com/datasnap/datasnap/internal/table"
)

// DType is the column-level classification.
type DType string

const (
	Numeric     DType = "numeric"
	Categorical DType = "categorical"
)

// NumericStats holds the describe()-style statistics of a numeric
// column. Valid is false when the column has no usable values; StdValid
// is false below two values, where the sample deviation has no meaning.
// An invalid statistic is never reported as zero.
type NumericStats struct {
	Mean     float64
	Median   float64
	Std      float64
	Min      float64
	Max      float64
	Valid    bool
	StdValid bool
}

// CategoricalStats holds the most frequent value of a categorical
// column. Valid is false when every cell is missing.
type CategoricalStats struct {
	Top   string
	Freq  int
	Valid bool
}

// ColumnSummary is the flat profiling result for one column. Exactly
// one of Numeric and Categorical is set, matching DType.
type ColumnSummary struct {
	Name         string
	DType        DType
	Count        int
	NullCount    int
	EmptyCount   int
	MissingCount int
	UniqueCount  int
	Numeric      *NumericStats
	Categorical  *CategoricalStats
}

// ProfileColumn computes the full summary for one column. It is a pure
// function of the column's cells and never fails: degenerate columns
// (all missing, zero rows) produce a summary with invalid stat blocks.
//
// A column is numeric only when every non-missing cell carries a number
// tag. One stray text cell forces the whole column into categorical
// treatment; numbers then participate through their original spelling.
// A column with no non-missing cells at all is categorical.
func ProfileColumn(col table.Column) ColumnSummary {
	s := ColumnSummary{Name: col.Name}

	allNumbers := true
	for _, v := range col.Values {
		switch v.Kind {
		case table.Null:
			s.NullCount++
		case table.Empty:
			s.EmptyCount++
		case table.Number:
			s.Count++
		default:
			s.Count++
			allNumbers = false
		}
	}
	s.MissingCount = s.NullCount + s.EmptyCount

	if s.Count > 0 && allNumbers {
		s.DType = Numeric
		s.Numeric = numericStats(col.Values)
		s.UniqueCount = uniqueNumbers(col.Values)
	} else {
		s.DType = Categorical
		s.Categorical = categoricalStats(col.Values)
		s.UniqueCount = uniqueStrings(col.Values)
	}

	return s
}

func numericStats(values []table.Value) *NumericStats {
	var nums []float64
	for _, v := range values {
		if v.Kind == table.Number {
			nums = append(nums, v.Num)
		}
	}

	stats := &NumericStats{}
	if len(nums) == 0 {
		return stats
	}
	stats.Valid = true

	sum := 0.0
	stats.Min = nums[0]
	stats.Max = nums[0]
	for _, n := range nums {
		sum += n
		if n < stats.Min {
			stats.Min = n
		}
		if n > stats.Max {
			stats.Max = n
		}
	}
	stats.Mean = sum / float64(len(nums))

	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		stats.Median = sorted[mid]
	} else {
		stats.Median = (sorted[mid-1] + sorted[mid]) / 2
	}

	if len(nums) > 1 {
		var sq float64
		for _, n := range nums {
			d := n - stats.Mean
			sq += d * d
		}
		stats.Std = math.Sqrt(sq / float64(len(nums)-1))
		stats.StdValid = true
	}

	return stats
}

func categoricalStats(values []table.Value) *CategoricalStats {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	seq := 0

	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		if _, ok := counts[v.Str]; !ok {
			firstSeen[v.Str] = seq
		}
		counts[v.Str]++
		seq++
	}

	stats := &CategoricalStats{}
	if len(counts) == 0 {
		return stats
	}
	stats.Valid = true

	// Ties go to the value that appeared first in the column.
	for val, n := range counts {
		if n > stats.Freq || (n == stats.Freq && firstSeen[val] < firstSeen[stats.Top]) {
			stats.Top = val
			stats.Freq = n
		}
	}

	return stats
}

func uniqueNumbers(values []table.Value) int {
	seen := make(map[float64]struct{})
	for _, v := range values {
		if v.Kind == table.Number {
			seen[v.Num] = struct{}{}
		}
	}
	return len(seen)
}

func uniqueStrings(values []table.Value) int {
	seen := make(map[string]struct{})
	for _, v := range values {
		if !v.IsMissing() {
			seen[v.Str] = struct{}{}
		}
	}
	return len(seen)
}
