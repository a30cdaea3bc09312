package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"relic/internal/spec"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	return path
}

// TestLoad verifies defaulting, name derivation, and corpus path
// resolution against the plan directory.
func TestLoad(t *testing.T) {
	path := writePlan(t, `
version: 1
task: quote-no-context
corpus: sentences.json
columns:
  - model: gpt-4o
    task: task2
    prompt_version: v1
    field: text
`)
	plan, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if plan.ValidityThreshold != 90 {
		t.Fatalf("default threshold = %d", plan.ValidityThreshold)
	}
	if plan.Columns[0].Name != "task2_v1_gpt-4o_text" {
		t.Fatalf("column name = %q", plan.Columns[0].Name)
	}
	if !strings.HasSuffix(plan.Corpus, string(filepath.Separator)+"sentences.json") || !filepath.IsAbs(plan.Corpus) {
		t.Fatalf("corpus path not resolved: %q", plan.Corpus)
	}
}

// TestValidateRejections covers the plan-level contract checks.
func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		plan spec.Plan
	}{
		{name: "bad version", plan: spec.Plan{Version: 2, Task: "line", ValidityThreshold: 90, Columns: []spec.ColumnSpec{{Name: "c"}}}},
		{name: "bad task", plan: spec.Plan{Version: 1, Task: "essay", ValidityThreshold: 90, Columns: []spec.ColumnSpec{{Name: "c"}}}},
		{name: "no columns", plan: spec.Plan{Version: 1, Task: "line", ValidityThreshold: 90}},
		{name: "duplicate columns", plan: spec.Plan{Version: 1, Task: "line", ValidityThreshold: 90, Columns: []spec.ColumnSpec{{Name: "c"}, {Name: "c"}}}},
		{name: "threshold out of range", plan: spec.Plan{Version: 1, Task: "line", ValidityThreshold: 150, Columns: []spec.ColumnSpec{{Name: "c"}}}},
		{name: "quote without corpus", plan: spec.Plan{Version: 1, Task: "quote-with-context", ValidityThreshold: 90, Columns: []spec.ColumnSpec{{Name: "c"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(&tc.plan); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
