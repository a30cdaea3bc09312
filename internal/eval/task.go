package eval

import (
	"fmt"
	"strings"
)

// TaskKind selects the scoring contract for a column.
type TaskKind string

const (
	// TaskQuoteWithContext and TaskQuoteNoContext are quote-retrieval
	// tasks scored by fuzzy matching against the reference corpus.
	TaskQuoteWithContext TaskKind = "quote-with-context"
	TaskQuoteNoContext   TaskKind = "quote-no-context"
	// TaskLine is line prediction, scored by numeric distance only.
	TaskLine TaskKind = "line"
)

// ParseTaskKind validates a task selector from the command line or plan.
func ParseTaskKind(value string) (TaskKind, error) {
	switch TaskKind(strings.TrimSpace(value)) {
	case TaskQuoteWithContext:
		return TaskQuoteWithContext, nil
	case TaskQuoteNoContext:
		return TaskQuoteNoContext, nil
	case TaskLine:
		return TaskLine, nil
	default:
		return "", fmt.Errorf("unknown task kind %q (expected quote-with-context, quote-no-context, or line)", value)
	}
}

// IsQuote reports whether the task scores by fuzzy text matching.
func (k TaskKind) IsQuote() bool {
	return k == TaskQuoteWithContext || k == TaskQuoteNoContext
}
