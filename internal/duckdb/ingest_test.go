package duckdb

import (
	"context"
	"testing"

	"relic/internal/dataset"
	"relic/internal/eval"
	"relic/internal/table"
)

// TestIngestExamplesUpsert verifies re-ingesting the same key updates
// in place instead of duplicating rows.
func TestIngestExamplesUpsert(t *testing.T) {
	db, err := Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	key := table.Key{UUID: "u1", BookTitle: "aeneid_book3"}
	first := map[table.Key]dataset.Example{key: {UUID: "u1", BookTitle: "aeneid_book3", Commenter: "servius"}}
	if err := IngestExamples(ctx, db, first); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	second := map[table.Key]dataset.Example{key: {UUID: "u1", BookTitle: "aeneid_book3", Commenter: "conington", AnswerQuoteIdx: 42, HasAnswerIdx: true}}
	if err := IngestExamples(ctx, db, second); err != nil {
		t.Fatalf("re-ingest: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM examples").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 example row, got %d", count)
	}
	var commenter string
	if err := db.QueryRowContext(ctx, "SELECT commenter FROM examples WHERE uuid = 'u1'").Scan(&commenter); err != nil {
		t.Fatalf("select: %v", err)
	}
	if commenter != "conington" {
		t.Fatalf("upsert did not update: %q", commenter)
	}
}

// TestIngestEvaluations verifies evaluation rows land under one run id.
func TestIngestEvaluations(t *testing.T) {
	db, err := Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	records := []eval.Record{
		{Key: table.Key{UUID: "u1", BookTitle: "b1"}, Column: "c1", Task: eval.TaskQuoteWithContext, Valid: true, Correct: true, Score: 97, MatchedIndex: 42},
		{Key: table.Key{UUID: "u2", BookTitle: "b1"}, Column: "c1", Task: eval.TaskQuoteWithContext, Missing: true},
	}
	runID, err := IngestEvaluations(ctx, db, records)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	var count int
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM evaluations WHERE run_id = ?", runID).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 evaluation rows, got %d", count)
	}
	var score interface{}
	if err := db.QueryRowContext(ctx, "SELECT score FROM evaluations WHERE uuid = 'u2'").Scan(&score); err != nil {
		t.Fatalf("select: %v", err)
	}
	if score != nil {
		t.Fatalf("missing row must carry NULL score, got %v", score)
	}
}
