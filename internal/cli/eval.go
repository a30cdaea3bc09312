package cli

import (
	"flag"
	"fmt"
	"io"

	"relic/internal/config"
	"relic/internal/eval"
	"relic/internal/runner"
	"relic/internal/ui"
)

// runEvalPipeline is a test seam for evaluation execution.
var runEvalPipeline = runner.RunEval

// runEval builds the handler for the eval command.
func runEval(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		tablePath := fs.String("i", "", "Wide table CSV to evaluate")
		resultsPath := fs.String("o", "", "Per-row results CSV (optional)")
		planPath := fs.String("plan", "", "Evaluation plan YAML")
		taskFlag := fs.String("task", "", "Task kind (when no plan is given)")
		corpusPath := fs.String("b", "", "Book sentences JSON (quote tasks)")
		var columns stringList
		fs.Var(&columns, "column", "Column to evaluate (repeatable, when no plan is given)")
		threshold := fs.Int("validity-threshold", 0, "Fuzzy score a best match must reach (default 90)")
		noColor := fs.Bool("no-color", false, "Disable ANSI colors")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		if *tablePath == "" {
			fmt.Fprintln(stderr, "eval needs -i")
			return ExitUsage
		}

		opts := runner.EvalOptions{
			TablePath:         *tablePath,
			ResultsPath:       *resultsPath,
			CorpusPath:        *corpusPath,
			Columns:           columns,
			ValidityThreshold: *threshold,
		}

		if *planPath != "" {
			plan, err := config.Load(*planPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load plan: %v\n", err)
				return ExitError
			}
			task, err := eval.ParseTaskKind(plan.Task)
			if err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
				return ExitError
			}
			opts.Task = task
			if opts.CorpusPath == "" {
				opts.CorpusPath = plan.Corpus
			}
			if opts.ValidityThreshold == 0 {
				opts.ValidityThreshold = plan.ValidityThreshold
			}
			if len(opts.Columns) == 0 {
				for _, column := range plan.Columns {
					opts.Columns = append(opts.Columns, column.Name)
				}
			}
		} else {
			if *taskFlag == "" || len(columns) == 0 {
				fmt.Fprintln(stderr, "eval needs either --plan, or --task with at least one --column")
				return ExitUsage
			}
			task, err := eval.ParseTaskKind(*taskFlag)
			if err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
				return ExitUsage
			}
			opts.Task = task
		}

		outcome, err := runEvalPipeline(opts)
		if err != nil {
			fmt.Fprintf(stderr, "Evaluation failed: %v\n", err)
			return ExitError
		}

		printer := ui.NewPrinter(stdout, *noColor)
		for _, summary := range outcome.Summaries {
			printer.PrintSummary(summary)
		}
		if *resultsPath != "" {
			printer.Info("Wrote %d row records to %s", len(outcome.Records), *resultsPath)
		}
		return ExitOK
	}
}
