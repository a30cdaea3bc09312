package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"relic/internal/dataset"
	"relic/internal/duckdb"
	"relic/internal/eval"
	"relic/internal/logstore"
	"relic/internal/ui"
)

// runIngest builds the handler for the ingest command.
func runIngest(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		dbPath := fs.String("db", "", "DuckDB database path (created if absent)")
		inputPath := fs.String("i", "", "Benchmark input CSV to ingest as examples")
		var logPaths stringList
		fs.Var(&logPaths, "l", "Inference log JSONL to ingest as responses (repeatable)")
		resultsPath := fs.String("results", "", "Evaluation results CSV to ingest")
		noColor := fs.Bool("no-color", false, "Disable ANSI colors")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if *dbPath == "" {
			fmt.Fprintln(stderr, "ingest needs --db")
			return ExitUsage
		}
		if *inputPath == "" && len(logPaths) == 0 && *resultsPath == "" {
			fmt.Fprintln(stderr, "ingest needs at least one of -i, -l, or --results")
			return ExitUsage
		}

		db, err := duckdb.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open database: %v\n", err)
			return ExitError
		}
		defer db.Close()

		ctx := context.Background()
		printer := ui.NewPrinter(stdout, *noColor)

		if *inputPath != "" {
			_, examples, err := dataset.Load(*inputPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load examples: %v\n", err)
				return ExitError
			}
			if err := duckdb.IngestExamples(ctx, db, examples); err != nil {
				fmt.Fprintf(stderr, "Failed to ingest examples: %v\n", err)
				return ExitError
			}
			printer.Info("Ingested %d examples", len(examples))
		}

		if len(logPaths) > 0 {
			index, err := logstore.Load(logPaths...)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load logs: %v\n", err)
				return ExitError
			}
			if err := duckdb.IngestResponses(ctx, db, index); err != nil {
				fmt.Fprintf(stderr, "Failed to ingest responses: %v\n", err)
				return ExitError
			}
			printer.Info("Ingested %d responses (malformed %d, superseded %d)",
				index.Len(), index.Malformed, index.Superseded)
		}

		if *resultsPath != "" {
			records, err := eval.ReadRecords(*resultsPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load results: %v\n", err)
				return ExitError
			}
			runID, err := duckdb.IngestEvaluations(ctx, db, records)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to ingest results: %v\n", err)
				return ExitError
			}
			printer.Info("Ingested %d evaluation records under run %s", len(records), runID)
		}
		return ExitOK
	}
}
