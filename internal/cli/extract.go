package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"relic/internal/extract"
	"relic/internal/runner"
	"relic/internal/ui"
)

// stringList collects a repeatable flag value.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("empty path")
	}
	*l = append(*l, value)
	return nil
}

// runExtractPipeline is a test seam for the extraction pipeline.
var runExtractPipeline = runner.RunExtract

// runExtract builds the handler for the extract command.
func runExtract(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		inputPath := fs.String("i", "", "Benchmark input CSV (uuid and book_title columns)")
		var logPaths stringList
		fs.Var(&logPaths, "l", "Inference log JSONL (repeatable, later files take priority)")
		outputPath := fs.String("o", "", "Wide output table CSV (created or merged into)")
		column := fs.String("column", "", "Destination column name")
		kindFlag := fs.String("kind", "", "Field kind: window, text, or line")
		model := fs.String("model", "", "Only extract records for this model")
		noColor := fs.Bool("no-color", false, "Disable ANSI colors")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		if *inputPath == "" || *outputPath == "" || len(logPaths) == 0 || *column == "" || *kindFlag == "" {
			fmt.Fprintln(stderr, "extract needs -i, -l, -o, --column, and --kind")
			return ExitUsage
		}
		kind, err := extract.ParseKind(*kindFlag)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}

		summary, err := runExtractPipeline(runner.ExtractOptions{
			InputPath:   *inputPath,
			LogPaths:    logPaths,
			OutputPath:  *outputPath,
			Column:      *column,
			Kind:        kind,
			ModelFilter: *model,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Extraction failed: %v\n", err)
			return ExitError
		}

		printer := ui.NewPrinter(stdout, *noColor)
		if summary.ZeroMatch {
			printer.Warn("No log records matched (model: %s); output left untouched", orAll(*model))
			return ExitOK
		}
		printer.Headline("Merged column %s into %s", *column, *outputPath)
		printer.Info("  records loaded: %d (malformed %d, superseded %d)", summary.RecordsLoaded, summary.Malformed, summary.Superseded)
		printer.Info("  rows matched: %d, extracted: %d, missing tag: %d, parse failures: %d",
			summary.Matched, summary.Extracted, summary.MissingTag, summary.ParseFailures)
		printer.Info("  table now %d rows x %d columns", summary.TableRows, summary.TableCols)
		return ExitOK
	}
}

func orAll(model string) string {
	if model == "" {
		return "all"
	}
	return model
}
