// Package summary prints the human-readable run reports of the CLI commands.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

const (
	margin    = "   "
	ruleWidth = 37
)

// Row is one label/value line of a table.
type Row struct {
	Label string
	Value interface{}
}

// Printer writes colored, aligned report blocks.
type Printer struct {
	w       io.Writer
	noColor bool
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithoutColor disables ANSI styling, e.g. when output is captured.
func (p *Printer) WithoutColor() *Printer {
	p.noColor = true
	return p
}

func (p *Printer) paint(c color.Color, s string) string {
	if p.noColor {
		return s
	}
	return c.Sprint(s)
}

// Banner prints a title underlined to its display width.
func (p *Printer) Banner(title string) {
	fmt.Fprintln(p.w, p.paint(color.Bold, title))
	fmt.Fprintln(p.w, strings.Repeat("=", runewidth.StringWidth(title)))
	fmt.Fprintln(p.w)
}

// Line prints an uncolored line.
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Success prints a green status line.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.paint(color.Green, "✅ "+fmt.Sprintf(format, args...)))
}

// Warn prints a yellow status line.
func (p *Printer) Warn(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.paint(color.Yellow, "⚠️  "+fmt.Sprintf(format, args...)))
}

// Fail prints a red status line.
func (p *Printer) Fail(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.paint(color.Red, "❌ "+fmt.Sprintf(format, args...)))
}

// Table prints rows between two rules with values aligned in one column.
func (p *Printer) Table(title string, rows []Row) {
	width := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Label) + 1; w > width {
			width = w
		}
	}

	fmt.Fprintln(p.w, p.paint(color.Cyan, title))
	rule := margin + strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.w, rule)
	for _, r := range rows {
		label := runewidth.FillRight(r.Label+":", width)
		fmt.Fprintf(p.w, "%s%s  %v\n", margin, label, r.Value)
	}
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w)
}

// Bullets prints a titled list followed by "... and N more" when items
// were left out.
func (p *Printer) Bullets(heading string, c color.Color, items []string, more int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(p.w, p.paint(c, heading))
	fmt.Fprintln(p.w)
	for _, item := range items {
		fmt.Fprintf(p.w, "%s• %s\n", margin, item)
	}
	if more > 0 {
		fmt.Fprintf(p.w, "%s... and %d more\n", margin, more)
	}
	fmt.Fprintln(p.w)
}

// Steps prints a numbered checklist.
func (p *Printer) Steps(heading string, steps []string) {
	fmt.Fprintln(p.w, heading)
	for i, s := range steps {
		fmt.Fprintf(p.w, "%s%d. %s\n", margin, i+1, s)
	}
	fmt.Fprintln(p.w)
}
