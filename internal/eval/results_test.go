package eval

import (
	"path/filepath"
	"testing"

	"relic/internal/table"
)

// TestResultsRoundTrip verifies the artifact written by WriteRecords
// can be ingested back with verdicts intact.
func TestResultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	records := []Record{
		{
			Key: table.Key{UUID: "u1", BookTitle: "aeneid_book3"}, Column: "c1",
			Task: TaskQuoteWithContext, Valid: true, Correct: true,
			Score: 97, MatchedIndex: 42, GroundTruthIndex: 42, HasGroundTruth: true,
		},
		{
			Key: table.Key{UUID: "u2", BookTitle: "aeneid_book3"}, Column: "c1",
			Task: TaskQuoteWithContext, Missing: true, MatchedIndex: -1,
		},
	}
	if err := WriteRecords(path, records); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if !got[0].Valid || !got[0].Correct || got[0].Score != 97 || got[0].MatchedIndex != 42 {
		t.Fatalf("first record mangled: %+v", got[0])
	}
	if !got[0].HasGroundTruth || got[0].GroundTruthIndex != 42 {
		t.Fatalf("ground truth mangled: %+v", got[0])
	}
	if !got[1].Missing || got[1].MatchedIndex != -1 {
		t.Fatalf("missing record mangled: %+v", got[1])
	}
}
