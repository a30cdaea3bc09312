package eval

import "relic/internal/table"

// Record is the per-row, per-column verdict. Derived data, regenerated
// on every evaluation run and never merged back into the wide table.
type Record struct {
	Key    table.Key
	Column string
	Task   TaskKind

	Extracted string
	Missing   bool

	// Quote-task fields.
	Valid        bool
	Correct      bool
	Score        int
	MatchedIndex int

	// Line-task fields.
	Exact    bool
	Within5  bool
	Within20 bool

	GroundTruthIndex int
	HasGroundTruth   bool

	// LengthRatio compares extracted length to the ground-truth quote.
	LengthRatio    float64
	HasLengthRatio bool

	Error string
}

// Summary aggregates a column's records. It is a pure reduction over
// the row-level records; every row, including missing ones, stays in
// the denominator.
type Summary struct {
	Column string
	Task   TaskKind

	Rows    int
	Missing int

	Valid    int
	Correct  int
	Exact    int
	Within5  int
	Within20 int

	AvgLengthRatio float64
	HasLengthRatio bool
}

// Summarize reduces records into a Summary.
func Summarize(column string, task TaskKind, records []Record) Summary {
	summary := Summary{Column: column, Task: task}
	ratioSum := 0.0
	ratioN := 0
	for _, record := range records {
		summary.Rows++
		if record.Missing {
			summary.Missing++
		}
		if record.Valid {
			summary.Valid++
		}
		if record.Correct {
			summary.Correct++
		}
		if record.Exact {
			summary.Exact++
		}
		if record.Within5 {
			summary.Within5++
		}
		if record.Within20 {
			summary.Within20++
		}
		if record.HasLengthRatio {
			ratioSum += record.LengthRatio
			ratioN++
		}
	}
	if ratioN > 0 {
		summary.AvgLengthRatio = ratioSum / float64(ratioN)
		summary.HasLengthRatio = true
	}
	return summary
}

// Rate returns count/rows, or zero for an empty column.
func (s Summary) Rate(count int) float64 {
	if s.Rows == 0 {
		return 0
	}
	return float64(count) / float64(s.Rows)
}
