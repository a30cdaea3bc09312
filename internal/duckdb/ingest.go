package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"relic/internal/dataset"
	"relic/internal/eval"
	"relic/internal/logstore"
	"relic/internal/table"
)

// IngestExamples upserts benchmark examples keyed by (uuid, book_title).
func IngestExamples(ctx context.Context, db *sql.DB, examples map[table.Key]dataset.Example) error {
	if err := checkArgs(ctx, db); err != nil {
		return err
	}
	for _, example := range examples {
		var answerIdx interface{}
		if example.HasAnswerIdx {
			answerIdx = example.AnswerQuoteIdx
		}
		if _, err := db.ExecContext(
			ctx,
			`INSERT INTO examples (uuid, book_title, commenter, masked_comment, answer_quote_text, answer_quote_idx)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (uuid, book_title) DO UPDATE SET
			   commenter = excluded.commenter,
			   masked_comment = excluded.masked_comment,
			   answer_quote_text = excluded.answer_quote_text,
			   answer_quote_idx = excluded.answer_quote_idx`,
			example.UUID,
			example.BookTitle,
			nullableString(example.Commenter),
			nullableString(example.MaskedComment),
			nullableString(example.AnswerQuoteText),
			answerIdx,
		); err != nil {
			return fmt.Errorf("upsert example (%s, %s): %w", example.UUID, example.BookTitle, err)
		}
	}
	return nil
}

// IngestResponses upserts the latest response per identity triple from
// a deduplicated log index.
func IngestResponses(ctx context.Context, db *sql.DB, index *logstore.Index) error {
	if err := checkArgs(ctx, db); err != nil {
		return err
	}
	if index == nil {
		return errors.New("duckdb: log index is nil")
	}
	for _, key := range index.Keys() {
		record, _ := index.Get(key)
		if _, err := db.ExecContext(
			ctx,
			`INSERT INTO responses (uuid, book_title, model, response, error, prompt_tokens, completion_tokens, total_tokens, cost)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (uuid, book_title, model) DO UPDATE SET
			   response = excluded.response,
			   error = excluded.error,
			   prompt_tokens = excluded.prompt_tokens,
			   completion_tokens = excluded.completion_tokens,
			   total_tokens = excluded.total_tokens,
			   cost = excluded.cost`,
			key.UUID,
			key.BookTitle,
			key.Model,
			nullableString(record.ResponseText()),
			nullableString(record.Error),
			record.Usage.PromptTokens,
			record.Usage.CompletionTokens,
			record.Usage.TotalTokens,
			record.Usage.Cost,
		); err != nil {
			return fmt.Errorf("upsert response (%s, %s, %s): %w", key.UUID, key.BookTitle, key.Model, err)
		}
	}
	return nil
}

// IngestEvaluations appends evaluation records under a fresh run id and
// returns it.
func IngestEvaluations(ctx context.Context, db *sql.DB, records []eval.Record) (string, error) {
	if err := checkArgs(ctx, db); err != nil {
		return "", err
	}
	runID := uuid.NewString()
	now := time.Now().UTC()
	for _, record := range records {
		var score, matched interface{}
		if record.Task.IsQuote() && !record.Missing {
			score = record.Score
			matched = record.MatchedIndex
		}
		if _, err := db.ExecContext(
			ctx,
			`INSERT INTO evaluations (eval_id, run_id, uuid, book_title, column_name, task, missing, valid, correct, exact_match, within_5, within_20, score, matched_idx, error, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			runID,
			record.Key.UUID,
			record.Key.BookTitle,
			record.Column,
			string(record.Task),
			record.Missing,
			record.Valid,
			record.Correct,
			record.Exact,
			record.Within5,
			record.Within20,
			score,
			matched,
			nullableString(record.Error),
			now,
		); err != nil {
			return "", fmt.Errorf("insert evaluation (%s, %s): %w", record.Key.UUID, record.Column, err)
		}
	}
	return runID, nil
}

// nullableString converts an optional string into a SQL argument.
func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func checkArgs(ctx context.Context, db *sql.DB) error {
	if ctx == nil {
		return errors.New("duckdb: context is nil")
	}
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	return nil
}
