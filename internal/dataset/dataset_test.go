package dataset

import (
	"testing"

	"relic/internal/table"
)

// TestFromTable verifies typed fields, including ground-truth index
// parsing with missing and non-numeric cells.
func TestFromTable(t *testing.T) {
	src, err := table.New([]string{"uuid", "book_title", ColCommenter, ColAnswerQuoteText, ColAnswerQuoteIdx})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	good := table.Key{UUID: "u1", BookTitle: "aeneid_book3"}
	bad := table.Key{UUID: "u2", BookTitle: "aeneid_book3"}
	for key, idx := range map[table.Key]string{good: "329", bad: "line?"} {
		if err := src.Set(key, ColCommenter, "conington"); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := src.Set(key, ColAnswerQuoteText, "litora multum ille"); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := src.Set(key, ColAnswerQuoteIdx, idx); err != nil {
			t.Fatalf("set: %v", err)
		}
	}

	examples, err := FromTable(src)
	if err != nil {
		t.Fatalf("from table: %v", err)
	}
	if len(examples) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(examples))
	}
	if ex := examples[good]; !ex.HasAnswerIdx || ex.AnswerQuoteIdx != 329 {
		t.Fatalf("good row parsed wrong: %+v", ex)
	}
	if ex := examples[bad]; ex.HasAnswerIdx {
		t.Fatalf("non-numeric index must not parse: %+v", ex)
	}
	if ex := examples[good]; ex.Commenter != "conington" {
		t.Fatalf("commenter = %q", ex.Commenter)
	}
}
