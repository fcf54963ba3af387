package unpack

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"dmmu/dmm"
)

const samplePacked = `//editor header
"aa" = (/turf/open/space,/area/space)
"ab" = (/obj/structure/lattice,/turf/open/space,/area/space)
"ac" = (/obj/machinery/door{name = "Airlock"; req_access = list(1,2)},/turf/open/floor,/area/hallway)
"ad" = (/obj/structure/sign{desc = "Danger; {keep out}"; icon_state = "x"},/turf/closed/wall,/area/hallway)
"ae" = (/obj/item/paper{info = "He said \"hi\""},/obj/effect{a = 1;b = 2},/turf/open/floor,/area/hallway)

(1,1,1) = {"
aaabac
adaeaa
"}
(1,1,2) = {"
ababaa
acadae
"}
`

func sameContent(t *testing.T, a, b *dmm.Map) {
	t.Helper()
	if a.Size != b.Size {
		t.Fatalf("Size %s != %s", a.Size, b.Size)
	}
	if a.Header != b.Header {
		t.Errorf("Header %q != %q", a.Header, b.Header)
	}
	if a.Dictionary().Len() != b.Dictionary().Len() {
		t.Errorf("dictionary sizes %d != %d", a.Dictionary().Len(), b.Dictionary().Len())
	}
	for c := range a.Coords() {
		ta, err := a.TileAt(c)
		if err != nil {
			t.Fatalf("TileAt(%s) error = %v", c, err)
		}
		tb, err := b.TileAt(c)
		if err != nil {
			t.Fatalf("TileAt(%s) error = %v", c, err)
		}
		if !ta.Equal(tb) {
			t.Errorf("tile %s differs:\n%q\n%q", c, ta, tb)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	orig, err := dmm.Parse(samplePacked)
	if err != nil {
		t.Fatalf("dmm.Parse() error = %v", err)
	}
	data, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	back, err := Parse(string(data))
	if err != nil {
		t.Fatalf("Parse() error = %v\n%s", err, data)
	}
	sameContent(t, orig, back)

	again, err := Encode(back)
	if err != nil {
		t.Fatalf("Encode() of parsed map error = %v", err)
	}
	if string(again) != string(data) {
		t.Errorf("re-encoded text differs:\n%s\n---\n%s", data, again)
	}
}

func TestParse_RoundTripEdgeCases(t *testing.T) {
	contents := [][]string{
		{`/obj{n = "}"}`, "/turf"},
		{`/obj/sign{desc = "a; b"}`, "/turf"},
		{`B"{not a block}"`, "/turf"},
		{`/obj{a=1}{b=2}`, "/turf"},
		{"/obj/a,b", "/turf"},
		{`/obj/sign{desc = "Привет"}`},
	}
	for _, content := range contents {
		t.Run(content[0], func(t *testing.T) {
			m, err := dmm.NewBuilder(dmm.Coord{X: 1, Y: 1, Z: 1}).Set(dmm.Coord{X: 1, Y: 1, Z: 1}, content...).Build()
			if err != nil {
				t.Fatal(err)
			}
			data, err := Encode(m)
			if err != nil {
				t.Fatal(err)
			}
			back, err := Parse(string(data))
			if err != nil {
				t.Fatalf("Parse() error = %v\n%s", err, data)
			}
			sameContent(t, m, back)
		})
	}
}

func TestParse_HeaderRoundTrip(t *testing.T) {
	headers := []string{
		"",
		"//a",
		"//a\n\n//b",
		"//a\n",
		"\n//a",
		"//a\n\n\n",
	}
	for _, h := range headers {
		t.Run(strconv.Quote(h), func(t *testing.T) {
			m, err := dmm.NewBuilder(dmm.Coord{X: 1, Y: 1, Z: 1}).Header(h).Set(dmm.Coord{X: 1, Y: 1, Z: 1}, "/turf").Build()
			if err != nil {
				t.Fatal(err)
			}
			data, err := Encode(m)
			if err != nil {
				t.Fatal(err)
			}
			back, err := Parse(string(data))
			if err != nil {
				t.Fatalf("Parse() error = %v\n%s", err, data)
			}
			sameContent(t, m, back)
		})
	}
}

func TestEncode_HeaderConflict(t *testing.T) {
	m, err := dmm.NewBuilder(dmm.Coord{X: 1, Y: 1, Z: 1}).Header("//a\n(1,1,1) = (").Set(dmm.Coord{X: 1, Y: 1, Z: 1}, "/turf").Build()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Encode(m); !errors.Is(err, ErrHeaderConflict) {
		t.Errorf("Encode() error = %v, want ErrHeaderConflict", err)
	}
}

func TestParse_SeparateClosingLine(t *testing.T) {
	text := Sentinel + "\n\n(1,1,1) = (\n/obj{\n\ta = 1\n\t},\n/turf\n)\n"
	m, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	tile, _ := m.TileAt(dmm.Coord{X: 1, Y: 1, Z: 1})
	if !tile.Equal(dmm.Tile{"/obj{a = 1}", "/turf"}) {
		t.Errorf("tile = %q", tile)
	}
}

func TestParse_CRLF(t *testing.T) {
	orig, err := dmm.Parse(samplePacked)
	if err != nil {
		t.Fatal(err)
	}
	data, err := Encode(orig)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(strings.ReplaceAll(string(data), "\n", "\r\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sameContent(t, orig, back)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
		msg  string
	}{
		{name: "empty", text: "", line: 1, msg: "conversion marker"},
		{name: "packed input", text: samplePacked, line: 1, msg: "conversion marker"},
		{name: "no blocks", text: Sentinel + "\n//header\n\n", msg: "no tile blocks"},
		{name: "text without blocks", text: Sentinel + "\n\nfoo\n", line: 3, msg: "no tile blocks"},
		{name: "text between blocks", text: Sentinel + "\n\n(1,1,1) = (\n/turf)\nfoo\n(2,1,1) = (\n/turf)\n", line: 5, msg: "not terminated"},
		{name: "zero coordinate", text: Sentinel + "\n\n(0,1,1) = (\n/turf)\n", line: 3, msg: "not positive"},
		{name: "unterminated", text: Sentinel + "\n\n(1,1,1) = (\n/turf\n", line: 4, msg: "not terminated"},
		{name: "empty block", text: Sentinel + "\n\n(1,1,1) = (\n\n", line: 3, msg: "empty tile block"},
		{name: "missing separator", text: Sentinel + "\n\n(1,1,1) = (\n/obj\n/turf)\n", line: 5, msg: "separator is missing"},
		{name: "duplicate block", text: Sentinel + "\n\n(1,1,1) = (\n/turf)\n(1,1,1) = (\n/turf)\n", line: 5, msg: "already defined on line 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			var pe *dmm.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse() error = %v, want ParseError", err)
			}
			if tt.line > 0 && pe.Line != tt.line {
				t.Errorf("Line = %d, want %d (%v)", pe.Line, tt.line, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", err, tt.msg)
			}
		})
	}
}

func TestParse_IncompleteIsDetectedOnEncode(t *testing.T) {
	text := Sentinel + "\n\n(1,1,1) = (\n/turf)\n(2,2,1) = (\n/turf)\n"
	m, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	var ige *dmm.IncompleteGridError
	if _, err := Encode(m); !errors.As(err, &ige) {
		t.Errorf("Encode() error = %v, want IncompleteGridError", err)
	}
}
