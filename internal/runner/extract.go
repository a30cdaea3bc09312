// Package runner drives the per-invocation pipelines: log loading,
// tag extraction, table merging, and evaluation.
package runner

import (
	"fmt"
	"os"
	"strings"

	"relic/internal/extract"
	"relic/internal/logstore"
	"relic/internal/table"
)

// ExtractOptions configures one extraction-and-merge invocation.
type ExtractOptions struct {
	InputPath  string
	LogPaths   []string
	OutputPath string
	Column     string
	Kind       extract.Kind
	// ModelFilter restricts the log index to one model. Required when
	// the logs carry several models, so one model's merge can never see
	// another model's records.
	ModelFilter string
}

// ExtractSummary reports per-invocation counts for the operator.
type ExtractSummary struct {
	RecordsLoaded int
	Malformed     int
	Superseded    int
	Matched       int
	Extracted     int
	MissingTag    int
	ParseFailures int
	// ZeroMatch is set when the (filtered) log index was empty; the
	// output table is left untouched in that case.
	ZeroMatch bool
	TableRows int
	TableCols int
}

// RunExtract loads the logs, extracts the tagged value for every input
// row with a matching record, and merges the resulting column into the
// output table under an exclusive lock. The merge is all-or-nothing:
// the updated table is computed in memory and swapped in atomically.
func RunExtract(opts ExtractOptions) (summary ExtractSummary, err error) {
	if strings.TrimSpace(opts.Column) == "" {
		return summary, fmt.Errorf("destination column name is required")
	}

	index, err := logstore.Load(opts.LogPaths...)
	if err != nil {
		return summary, err
	}
	summary.RecordsLoaded = index.Len()
	summary.Malformed = index.Malformed
	summary.Superseded = index.Superseded

	if opts.ModelFilter != "" {
		index = index.FilterByModel(opts.ModelFilter)
	} else if models := index.Models(); len(models) > 1 {
		return summary, fmt.Errorf("logs contain %d models (%s); pass a model filter so merges stay per-model",
			len(models), strings.Join(models, ", "))
	}
	if index.Len() == 0 {
		summary.ZeroMatch = true
		return summary, nil
	}

	input, err := table.ReadCSV(opts.InputPath)
	if err != nil {
		return summary, err
	}

	fragment, err := buildFragment(input, index, opts.Column, opts.Kind, &summary)
	if err != nil {
		return summary, err
	}
	if summary.Matched == 0 {
		summary.ZeroMatch = true
		return summary, nil
	}

	lock, err := table.AcquireLock(opts.OutputPath)
	if err != nil {
		return summary, err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()

	var existing *table.Table
	if _, statErr := os.Stat(opts.OutputPath); statErr == nil {
		existing, err = table.ReadCSV(opts.OutputPath)
		if err != nil {
			return summary, err
		}
	}

	merged, err := table.Merge(existing, fragment, []string{opts.Column})
	if err != nil {
		return summary, err
	}
	if err = table.WriteAtomic(merged, opts.OutputPath); err != nil {
		return summary, err
	}
	summary.TableRows = merged.Len()
	summary.TableCols = len(merged.Columns())
	return summary, err
}

// buildFragment restricts the input table to rows with a matching log
// record and appends the extracted column.
func buildFragment(input *table.Table, index *logstore.Index, column string, kind extract.Kind, summary *ExtractSummary) (*table.Table, error) {
	byExample := make(map[table.Key]logstore.Record, index.Len())
	for _, key := range index.Keys() {
		record, _ := index.Get(key)
		byExample[table.Key{UUID: key.UUID, BookTitle: key.BookTitle}] = record
	}

	fragment, err := table.New(append(input.Columns(), column))
	if err != nil {
		return nil, err
	}
	for _, key := range input.Keys() {
		record, ok := byExample[key]
		if !ok {
			continue
		}
		summary.Matched++
		for _, name := range input.Columns()[len(table.KeyColumns):] {
			if err := fragment.Set(key, name, input.Get(key, name)); err != nil {
				return nil, err
			}
		}
		value := extract.Extract(record.ResponseText(), kind)
		switch {
		case value.Present:
			summary.Extracted++
		case value.ParseFailed:
			summary.ParseFailures++
		default:
			summary.MissingTag++
		}
		cell := table.Missing
		if value.Present {
			cell = value.Text
		}
		if err := fragment.Set(key, column, cell); err != nil {
			return nil, err
		}
	}
	return fragment, nil
}
