// Package spec defines the evaluation plan schema: which extracted
// columns to score, under which task contract, against which corpus.
package spec

// Plan is the YAML evaluation plan. It replaces a hard-coded model
// list: each entry names one wide-table column to evaluate.
type Plan struct {
	Version           int          `yaml:"version"`
	Task              string       `yaml:"task"`
	Corpus            string       `yaml:"corpus"`
	ValidityThreshold int          `yaml:"validity_threshold"`
	Columns           []ColumnSpec `yaml:"columns"`
}

// ColumnSpec names one extracted column. Name may be given directly or
// derived from the identifying parts.
type ColumnSpec struct {
	Name          string `yaml:"name"`
	Task          string `yaml:"task"`
	PromptVersion string `yaml:"prompt_version"`
	Model         string `yaml:"model"`
	Field         string `yaml:"field"`
}
