package ui

import (
	"fmt"

	"relic/internal/eval"
)

// PrintSummary renders one column's aggregate in the fixed layout the
// run logs use.
func (p *Printer) PrintSummary(summary eval.Summary) {
	p.Headline("Column %s (%s): %d rows, %d missing", summary.Column, summary.Task, summary.Rows, summary.Missing)
	if summary.Task.IsQuote() {
		p.Info("  valid:    %s", countAndRate(summary.Valid, summary))
		p.Info("  correct:  %s", countAndRate(summary.Correct, summary))
		if summary.HasLengthRatio {
			p.Info("  avg length ratio: %.1f", summary.AvgLengthRatio)
		}
		return
	}
	p.Info("  exact:     %s", countAndRate(summary.Exact, summary))
	p.Info("  within-5:  %s", countAndRate(summary.Within5, summary))
	p.Info("  within-20: %s", countAndRate(summary.Within20, summary))
}

func countAndRate(count int, summary eval.Summary) string {
	return fmt.Sprintf("%d/%d (%.1f%%)", count, summary.Rows, summary.Rate(count)*100)
}
