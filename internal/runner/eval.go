package runner

import (
	"fmt"

	"relic/internal/corpus"
	"relic/internal/dataset"
	"relic/internal/eval"
	"relic/internal/table"
)

// EvalOptions configures one evaluation invocation over a wide table.
type EvalOptions struct {
	TablePath         string
	ResultsPath       string
	Task              eval.TaskKind
	CorpusPath        string
	Columns           []string
	ValidityThreshold int
}

// EvalOutcome bundles all row records with the per-column aggregates.
type EvalOutcome struct {
	Records   []eval.Record
	Summaries []eval.Summary
}

// RunEval scores every requested column of the wide table and writes
// the per-row results artifact when a path is given.
func RunEval(opts EvalOptions) (EvalOutcome, error) {
	var outcome EvalOutcome
	if len(opts.Columns) == 0 {
		return outcome, fmt.Errorf("no columns to evaluate")
	}

	wide, err := table.ReadCSV(opts.TablePath)
	if err != nil {
		return outcome, err
	}
	examples, err := dataset.FromTable(wide)
	if err != nil {
		return outcome, err
	}

	var reference *corpus.Corpus
	if opts.Task.IsQuote() {
		if opts.CorpusPath == "" {
			return outcome, fmt.Errorf("task %s needs a reference corpus path", opts.Task)
		}
		reference, err = corpus.Load(opts.CorpusPath)
		if err != nil {
			return outcome, err
		}
	}

	evalOpts := eval.Options{ValidityThreshold: opts.ValidityThreshold}
	for _, column := range opts.Columns {
		records, summary, err := eval.EvaluateColumn(wide, examples, column, opts.Task, reference, evalOpts)
		if err != nil {
			return outcome, err
		}
		outcome.Records = append(outcome.Records, records...)
		outcome.Summaries = append(outcome.Summaries, summary)
	}

	if opts.ResultsPath != "" {
		if err := eval.WriteRecords(opts.ResultsPath, outcome.Records); err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}
