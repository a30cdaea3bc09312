// Package ui renders per-invocation summary lines for the terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Printer writes optionally colored status lines to one writer.
type Printer struct {
	w       io.Writer
	noColor bool
}

// NewPrinter builds a printer. Color is disabled when asked, or when
// the writer is not a terminal.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	return &Printer{w: w, noColor: noColor || !isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// Headline prints a prominent section line.
func (p *Printer) Headline(format string, args ...interface{}) {
	p.println(fmt.Sprintf(format, args...), lipgloss.Color("33"))
}

// Info prints a regular status line.
func (p *Printer) Info(format string, args ...interface{}) {
	p.println(fmt.Sprintf(format, args...), lipgloss.Color("242"))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...interface{}) {
	p.println(fmt.Sprintf(format, args...), lipgloss.Color("178"))
}

func (p *Printer) println(text string, color lipgloss.Color) {
	fmt.Fprintln(p.w, p.stylize(text, color))
}

// stylize applies optional color styling.
func (p *Printer) stylize(text string, color lipgloss.Color) string {
	if p.noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
