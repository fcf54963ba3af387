// Package debug has helpers producing human readable dumps of internal
// structures for troubleshooting.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indentUnit = "  "

// TreeWriter accumulates indented lines of a tree-like dump.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString(indentUnit)
	}
}

// Line writes formatted line at the given depth.
func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes labeled value quoted so control characters are visible.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// List writes labeled values one per line under the label, each quoted.
func (tw TreeWriter) List(depth int, label string, values []string) {
	tw.Line(depth, "%s (%d)", label, len(values))
	for i, v := range values {
		tw.indent(depth + 1)
		tw.w.WriteString(strconv.Itoa(i))
		tw.w.WriteString(": ")
		tw.w.WriteString(encodeText(v))
		tw.w.WriteByte('\n')
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
