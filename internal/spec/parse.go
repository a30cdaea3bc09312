package spec

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParsePlan decodes a plan document strictly: unknown fields and
// multiple YAML documents are rejected.
func ParsePlan(data []byte) (Plan, error) {
	var plan Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&plan); err != nil {
		return Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Plan{}, fmt.Errorf("parse plan: multiple YAML documents are not supported")
		}
		return Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	return plan, nil
}

// ColumnName builds a wide-table column name from its identifying
// parts, joined by underscores with empty parts skipped. The encoding
// is (task, prompt_version, model, field).
func ColumnName(task, promptVersion, model, field string) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{task, promptVersion, model, field} {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "_")
}

// ResolvedName returns the column's explicit name, or the derived one.
func (c ColumnSpec) ResolvedName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return ColumnName(c.Task, c.PromptVersion, c.Model, c.Field)
}
