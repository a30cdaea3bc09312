package cucumber

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/cucumber/godog"

	"relic/internal/cli"
)

// featureState holds scenario state for cucumber CLI tests.
type featureState struct {
	workDir    string
	previousWD string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.setup()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a benchmark input with examples "([^"]+)" and "([^"]+)"$`, state.aBenchmarkInput)
	ctx.Step(`^an inference log "([^"]+)" for model "([^"]+)" answering "([^"]+)"$`, state.anInferenceLog)
	ctx.Step(`^a wide table "([^"]+)" with ground truth index (\d+) and prediction "([^"]*)" in column "([^"]+)"$`, state.aWideTable)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the table "([^"]+)" has column "([^"]+)" with value "([^"]+)" for "([^"]+)"$`, state.theTableHasValue)
	ctx.Step(`^no file "([^"]+)" was written$`, state.noFileWasWritten)
	ctx.Step(`^the results file "([^"]+)" marks "([^"]+)" as exact$`, state.theResultsFileMarksExact)
}

// setup creates a scratch directory and moves into it.
func (s *featureState) setup() error {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	previous, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}
	s.previousWD = previous
	dir, err := os.MkdirTemp("", "relic-cucumber-")
	if err != nil {
		return fmt.Errorf("make scratch dir: %w", err)
	}
	s.workDir = dir
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	return nil
}

// cleanup restores the working directory and removes scenario files.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}

func (s *featureState) aBenchmarkInput(first, second string) error {
	var sb strings.Builder
	sb.WriteString("uuid,book_title,commenter,answer_quote_text,answer_quote_idx\n")
	for _, uuid := range []string{first, second} {
		fmt.Fprintf(&sb, "%s,aeneid_book3,servius,placeholder,42\n", uuid)
	}
	return os.WriteFile("input.csv", []byte(sb.String()), 0o644)
}

func (s *featureState) anInferenceLog(name, model, answer string) error {
	var sb strings.Builder
	for _, uuid := range []string{"u1", "u2"} {
		fmt.Fprintf(&sb, `{"uuid":%q,"book_title":"aeneid_book3","model":%q,"status":"ok","response_raw":%q}`+"\n",
			uuid, model, answer)
	}
	return os.WriteFile(name, []byte(sb.String()), 0o644)
}

func (s *featureState) aWideTable(name string, groundTruth int, prediction, column string) error {
	content := fmt.Sprintf("uuid,book_title,answer_quote_text,answer_quote_idx,%s\n"+
		"u1,aeneid_book3,placeholder,%d,%s\n", column, groundTruth, prediction)
	return os.WriteFile(name, []byte(content), 0o644)
}

func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "relic" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("exit code %d, stderr: %s", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theOutputContains(want string) error {
	if !strings.Contains(s.stdout.String(), want) {
		return fmt.Errorf("stdout lacks %q:\n%s", want, s.stdout.String())
	}
	return nil
}

func (s *featureState) theTableHasValue(name, column, value, uuid string) error {
	cell, err := s.lookupCell(name, column, uuid)
	if err != nil {
		return err
	}
	if cell != value {
		return fmt.Errorf("cell %s[%s] = %q, want %q", uuid, column, cell, value)
	}
	return nil
}

func (s *featureState) noFileWasWritten(name string) error {
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("file %s exists", name)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	return nil
}

func (s *featureState) theResultsFileMarksExact(name, uuid string) error {
	cell, err := s.lookupCell(name, "exact", uuid)
	if err != nil {
		return err
	}
	if cell != "true" {
		return fmt.Errorf("exact for %s = %q, want true", uuid, cell)
	}
	return nil
}

// lookupCell finds one cell in a CSV file by uuid row and column name.
func (s *featureState) lookupCell(name, column, uuid string) (string, error) {
	file, err := os.Open(name)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%s is empty", name)
	}
	columnIdx, uuidIdx := -1, -1
	for i, header := range rows[0] {
		switch header {
		case column:
			columnIdx = i
		case "uuid":
			uuidIdx = i
		}
	}
	if columnIdx < 0 {
		return "", fmt.Errorf("%s has no column %q (header %v)", name, column, rows[0])
	}
	if uuidIdx < 0 {
		return "", fmt.Errorf("%s has no uuid column", name)
	}
	for _, row := range rows[1:] {
		if row[uuidIdx] == uuid {
			return row[columnIdx], nil
		}
	}
	return "", fmt.Errorf("%s has no row for uuid %q", name, uuid)
}
