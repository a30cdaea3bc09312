package eval

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"relic/internal/table"
)

// resultColumns is the header of the per-row results artifact.
var resultColumns = []string{
	"uuid", "book_title", "column", "task",
	"missing", "valid", "correct", "exact", "within_5", "within_20",
	"score", "matched_idx", "ground_truth_idx", "error",
}

// WriteRecords writes row-level evaluation records as a CSV artifact.
// Records are derived data: the file is rewritten whole on every run.
func WriteRecords(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results: %w", err)
	}
	writer := csv.NewWriter(file)
	writeErr := writer.Write(resultColumns)
	for _, record := range records {
		if writeErr != nil {
			break
		}
		writeErr = writer.Write(resultRow(record))
	}
	if writeErr == nil {
		writer.Flush()
		writeErr = writer.Error()
	}
	closeErr := file.Close()
	if writeErr != nil {
		return fmt.Errorf("write results: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close results: %w", closeErr)
	}
	return nil
}

// ReadRecords loads a results artifact back into row records, for
// ingestion into the results database.
func ReadRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read results header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}
	for _, name := range resultColumns {
		if _, ok := pos[name]; !ok {
			return nil, fmt.Errorf("results file lacks column %q", name)
		}
	}

	var records []Record
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read results row: %w", err)
		}
		cell := func(name string) string { return cells[pos[name]] }
		record := Record{
			Key:          table.Key{UUID: cell("uuid"), BookTitle: cell("book_title")},
			Column:       cell("column"),
			Task:         TaskKind(cell("task")),
			Missing:      cell("missing") == "true",
			Valid:        cell("valid") == "true",
			Correct:      cell("correct") == "true",
			Exact:        cell("exact") == "true",
			Within5:      cell("within_5") == "true",
			Within20:     cell("within_20") == "true",
			MatchedIndex: -1,
			Error:        cell("error"),
		}
		if raw := cell("score"); raw != "" {
			if record.Score, err = strconv.Atoi(raw); err != nil {
				return nil, fmt.Errorf("results row has bad score %q", raw)
			}
		}
		if raw := cell("matched_idx"); raw != "" {
			if record.MatchedIndex, err = strconv.Atoi(raw); err != nil {
				return nil, fmt.Errorf("results row has bad matched index %q", raw)
			}
		}
		if raw := cell("ground_truth_idx"); raw != "" {
			if record.GroundTruthIndex, err = strconv.Atoi(raw); err != nil {
				return nil, fmt.Errorf("results row has bad ground-truth index %q", raw)
			}
			record.HasGroundTruth = true
		}
		records = append(records, record)
	}
	return records, nil
}

func resultRow(record Record) []string {
	groundTruth := ""
	if record.HasGroundTruth {
		groundTruth = strconv.Itoa(record.GroundTruthIndex)
	}
	matched := ""
	score := ""
	if record.Task.IsQuote() && !record.Missing {
		matched = strconv.Itoa(record.MatchedIndex)
		score = strconv.Itoa(record.Score)
	}
	return []string{
		record.Key.UUID,
		record.Key.BookTitle,
		record.Column,
		string(record.Task),
		strconv.FormatBool(record.Missing),
		strconv.FormatBool(record.Valid),
		strconv.FormatBool(record.Correct),
		strconv.FormatBool(record.Exact),
		strconv.FormatBool(record.Within5),
		strconv.FormatBool(record.Within20),
		score,
		matched,
		groundTruth,
		record.Error,
	}
}
