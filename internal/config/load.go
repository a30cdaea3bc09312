// Package config loads and validates evaluation plan files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"relic/internal/eval"
	"relic/internal/spec"
)

// Load reads, parses, normalizes, and validates a plan file. Relative
// corpus paths resolve against the plan file's directory.
func Load(path string) (spec.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.Plan{}, fmt.Errorf("read plan: %w", err)
	}
	plan, err := spec.ParsePlan(data)
	if err != nil {
		return spec.Plan{}, err
	}
	Normalize(&plan, filepath.Dir(path))
	if err := Validate(&plan); err != nil {
		return spec.Plan{}, err
	}
	return plan, nil
}

// Normalize fills defaults and canonicalizes fields in place.
func Normalize(plan *spec.Plan, baseDir string) {
	plan.Task = strings.TrimSpace(plan.Task)
	plan.Corpus = strings.TrimSpace(plan.Corpus)
	if plan.Corpus != "" && baseDir != "" && !filepath.IsAbs(plan.Corpus) {
		plan.Corpus = filepath.Join(baseDir, plan.Corpus)
	}
	if plan.ValidityThreshold == 0 {
		plan.ValidityThreshold = eval.DefaultValidityThreshold
	}
	for i := range plan.Columns {
		plan.Columns[i].Name = plan.Columns[i].ResolvedName()
	}
}

// Validate checks a normalized plan.
func Validate(plan *spec.Plan) error {
	if plan.Version != 1 {
		return fmt.Errorf("plan version %d is not supported (want 1)", plan.Version)
	}
	task, err := eval.ParseTaskKind(plan.Task)
	if err != nil {
		return err
	}
	if plan.ValidityThreshold < 0 || plan.ValidityThreshold > 100 {
		return fmt.Errorf("validity_threshold %d out of range [0, 100]", plan.ValidityThreshold)
	}
	if len(plan.Columns) == 0 {
		return fmt.Errorf("plan names no columns to evaluate")
	}
	seen := make(map[string]bool, len(plan.Columns))
	for _, column := range plan.Columns {
		if column.Name == "" {
			return fmt.Errorf("plan column has neither a name nor parts to derive one")
		}
		if seen[column.Name] {
			return fmt.Errorf("plan names column %q twice", column.Name)
		}
		seen[column.Name] = true
	}
	if task.IsQuote() && plan.Corpus == "" {
		return fmt.Errorf("task %s needs a corpus path", task)
	}
	return nil
}
