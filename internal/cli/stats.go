package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"relic/internal/logstore"
	"relic/internal/stats"
)

// runStats builds the handler for the stats command.
func runStats(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		var logPaths stringList
		fs.Var(&logPaths, "l", "Inference log JSONL (repeatable)")
		outputPath := fs.String("o", "", "Write the report to a file instead of stdout")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if len(logPaths) == 0 {
			fmt.Fprintln(stderr, "stats needs at least one -l log path")
			return ExitUsage
		}

		records, malformed, err := logstore.ReadAll(logPaths...)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read logs: %v\n", err)
			return ExitError
		}
		report := stats.Compute(records)
		if malformed > 0 {
			fmt.Fprintf(stderr, "Skipped %d malformed log lines\n", malformed)
		}

		if *outputPath == "" {
			if err := stats.WriteJSON(stdout, report); err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
				return ExitError
			}
			return ExitOK
		}
		file, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to create %s: %v\n", *outputPath, err)
			return ExitError
		}
		writeErr := stats.WriteJSON(file, report)
		closeErr := file.Close()
		if writeErr != nil {
			fmt.Fprintf(stderr, "%v\n", writeErr)
			return ExitError
		}
		if closeErr != nil {
			fmt.Fprintf(stderr, "Failed to close %s: %v\n", *outputPath, closeErr)
			return ExitError
		}
		fmt.Fprintf(stderr, "Stats written to %s\n", *outputPath)
		return ExitOK
	}
}
