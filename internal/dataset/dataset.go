// Package dataset gives a typed view of the benchmark example fields
// that ride along as the fixed prefix of every wide table.
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"relic/internal/table"
)

// Column names of the benchmark input CSV.
const (
	ColCommenter       = "commenter"
	ColMaskedComment   = "Full_Mask_comment"
	ColAnswerQuoteText = "answer_quote_text"
	ColAnswerQuoteIdx  = "answer_quote_idx"
)

// Example is one benchmark item: a commentary with a masked citation and
// the ground-truth quotation it cites. Immutable reference data.
type Example struct {
	UUID            string
	BookTitle       string
	Commenter       string
	MaskedComment   string
	AnswerQuoteText string
	AnswerQuoteIdx  int
	// HasAnswerIdx is false when the ground-truth line index cell was
	// empty or non-numeric; such rows stay in the denominator but can
	// never be scored correct.
	HasAnswerIdx bool
}

// FromTable reads the typed example fields out of a table, one Example
// per row. Reference columns the table lacks come back empty.
func FromTable(t *table.Table) (map[table.Key]Example, error) {
	if t == nil {
		return nil, fmt.Errorf("dataset: table is nil")
	}
	examples := make(map[table.Key]Example, t.Len())
	for _, key := range t.Keys() {
		example := Example{
			UUID:            key.UUID,
			BookTitle:       key.BookTitle,
			Commenter:       t.Get(key, ColCommenter),
			MaskedComment:   t.Get(key, ColMaskedComment),
			AnswerQuoteText: t.Get(key, ColAnswerQuoteText),
		}
		raw := strings.TrimSpace(t.Get(key, ColAnswerQuoteIdx))
		if raw != "" {
			idx, err := strconv.Atoi(raw)
			if err == nil {
				example.AnswerQuoteIdx = idx
				example.HasAnswerIdx = true
			}
		}
		examples[key] = example
	}
	return examples, nil
}

// Load reads a benchmark example CSV and returns both the raw table and
// the typed view.
func Load(path string) (*table.Table, map[table.Key]Example, error) {
	t, err := table.ReadCSV(path)
	if err != nil {
		return nil, nil, err
	}
	examples, err := FromTable(t)
	if err != nil {
		return nil, nil, err
	}
	return t, examples, nil
}
