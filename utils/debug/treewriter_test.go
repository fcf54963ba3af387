package debug

import (
	"strings"
	"testing"
)

func TestNewTreeWriter(t *testing.T) {
	tw := NewTreeWriter()
	if tw == nil {
		t.Fatal("NewTreeWriter() returned nil")
	}
	if tw.String() != "" {
		t.Error("Expected empty string from new TreeWriter")
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "test", want: "test\n"},
		{name: "depth 1", depth: 1, format: "indented", want: "  indented\n"},
		{name: "depth 2", depth: 2, format: "double indent", want: "    double indent\n"},
		{name: "with formatting", depth: 1, format: "Key[%q] size%s", args: []any{"aa", "(1,2,3)"}, want: "  Key[\"aa\"] size(1,2,3)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tw := NewTreeWriter()
	tw.TextBlock(1, "Header", "//comment\twith tab")
	tw.TextBlock(0, "Empty", "")

	want := "  Header: \"//comment\\twith tab\"\nEmpty: \n"
	if got := tw.String(); got != want {
		t.Errorf("TextBlock() = %q, want %q", got, want)
	}
}

func TestTreeWriter_List(t *testing.T) {
	tw := NewTreeWriter()
	tw.List(1, "Tile", []string{"/turf/floor", `/obj/sign{desc = "hi"}`})

	lines := strings.Split(strings.TrimSuffix(tw.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("List() produced %d lines, want 3: %q", len(lines), tw.String())
	}
	if lines[0] != "  Tile (2)" {
		t.Errorf("header line = %q", lines[0])
	}
	if lines[1] != `    0: "/turf/floor"` {
		t.Errorf("first value line = %q", lines[1])
	}
	if lines[2] != `    1: "/obj/sign{desc = \"hi\"}"` {
		t.Errorf("second value line = %q", lines[2])
	}
}
