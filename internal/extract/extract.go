package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind selects the delimiter convention used to pull an answer out of a
// raw model response.
type Kind string

const (
	KindWindow Kind = "window"
	KindText   Kind = "text"
	KindLine   Kind = "line"
)

// ParseKind validates a field-kind selector from the command line.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.TrimSpace(value)) {
	case KindWindow:
		return KindWindow, nil
	case KindText:
		return KindText, nil
	case KindLine:
		return KindLine, nil
	default:
		return "", fmt.Errorf("unknown field kind %q (expected window, text, or line)", value)
	}
}

// Value is the result of extracting one tagged answer from a response.
// Present is false when the tag is missing or, for line kinds, when the
// tag content does not parse as an integer.
type Value struct {
	Present bool
	Text    string
	Line    int
	// ParseFailed marks a <line> tag whose content was not an integer.
	ParseFailed bool
}

var tagPatterns = map[Kind]*regexp.Regexp{
	KindWindow: regexp.MustCompile(`(?s)<window>(.*?)</window>`),
	KindText:   regexp.MustCompile(`(?s)<text>(.*?)</text>`),
	KindLine:   regexp.MustCompile(`(?s)<line>(.*?)</line>`),
}

// Extract pulls the first occurrence of the tag for kind out of raw.
// Models sometimes echo instruction examples later in their answer, so
// the earliest occurrence is authoritative. Content is whitespace-trimmed.
func Extract(raw string, kind Kind) Value {
	pattern, ok := tagPatterns[kind]
	if !ok {
		return Value{}
	}
	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return Value{}
	}
	content := strings.TrimSpace(match[1])
	if kind != KindLine {
		return Value{Present: true, Text: content}
	}
	line, err := strconv.Atoi(content)
	if err != nil {
		return Value{ParseFailed: true}
	}
	return Value{Present: true, Text: content, Line: line}
}
