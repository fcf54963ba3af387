package unpack

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"dmmu/dmm"
)

var blockHeader = regexp.MustCompile(`^\((\d+),(\d+),(\d+)\) = \($`)

type block struct {
	coord dmm.Coord
	line  int
	body  []string
}

// Parse reads expanded text and rebuilds the map. Dictionary keys are
// assigned anew, so only tile content is guaranteed to match the map the
// text was produced from. Key length of the original is not recorded in the
// expanded form.
func Parse(text string) (*dmm.Map, error) {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 || lines[0] != Sentinel {
		return nil, &dmm.ParseError{Line: 1, Msg: "expanded map must start with conversion marker"}
	}

	// header is everything before the first block less the empty line
	// opening the first level, so it may contain empty lines itself
	i := 1
	for i < len(lines) && !blockHeader.MatchString(lines[i]) {
		i++
	}
	header := lines[1:i]
	if n := len(header); n > 0 && len(header[n-1]) == 0 {
		header = header[:n-1]
	}

	var (
		blocks []*block
		cur    *block
	)
	for ; i < len(lines); i++ {
		l := lines[i]
		if m := blockHeader.FindStringSubmatch(l); m != nil {
			c, err := parseCoord(m[1:])
			if err != nil {
				return nil, &dmm.ParseError{Line: i + 1, Msg: "bad coordinate", Err: err}
			}
			cur = &block{coord: c, line: i + 1}
			blocks = append(blocks, cur)
			continue
		}
		cur.body = append(cur.body, l)
	}
	if len(blocks) == 0 {
		return nil, &dmm.ParseError{Line: len(lines), Msg: "no tile blocks found"}
	}

	var size dmm.Coord
	for _, b := range blocks {
		size.X, size.Y, size.Z = max(size.X, b.coord.X), max(size.Y, b.coord.Y), max(size.Z, b.coord.Z)
	}

	seen := make(map[dmm.Coord]int, len(blocks))
	bld := dmm.NewBuilder(size).Header(strings.Join(header, "\n"))
	for _, b := range blocks {
		if prev, dup := seen[b.coord]; dup {
			return nil, &dmm.ParseError{Line: b.line, Msg: fmt.Sprintf("coordinate %s already defined on line %d", b.coord, prev)}
		}
		seen[b.coord] = b.line
		tile, err := collapse(b)
		if err != nil {
			return nil, err
		}
		bld.Set(b.coord, tile...)
	}
	return bld.Build()
}

func parseCoord(v []string) (dmm.Coord, error) {
	var n [3]int
	for i, s := range v {
		x, err := strconv.Atoi(s)
		if err != nil {
			return dmm.Coord{}, err
		}
		if x < 1 {
			return dmm.Coord{}, fmt.Errorf("coordinate %d is not positive", x)
		}
		n[i] = x
	}
	return dmm.Coord{X: n[0], Y: n[1], Z: n[2]}, nil
}

// collapse reverts tile expansion: indented lines continue previous
// prototype, other lines start a new one after the trailing comma of the
// previous prototype is removed.
func collapse(b *block) (dmm.Tile, error) {
	body := b.body
	for len(body) > 0 && len(body[len(body)-1]) == 0 {
		body = body[:len(body)-1]
	}
	if len(body) == 0 {
		return nil, &dmm.ParseError{Line: b.line, Msg: "empty tile block"}
	}
	last := body[len(body)-1]
	switch {
	case last == ")":
		body = body[:len(body)-1]
	case strings.HasSuffix(last, ")"):
		body = append(body[:len(body)-1:len(body)-1], strings.TrimSuffix(last, ")"))
	default:
		return nil, &dmm.ParseError{Line: b.line + len(body), Msg: "tile block is not terminated"}
	}

	var tile dmm.Tile
	for i, l := range body {
		if strings.HasPrefix(l, indent) && len(tile) > 0 {
			tile[len(tile)-1] += l[len(indent):]
			continue
		}
		if n := len(tile); n > 0 {
			prev := tile[n-1]
			if !strings.HasSuffix(prev, ",") {
				return nil, &dmm.ParseError{Line: b.line + i + 1, Msg: "prototype separator is missing"}
			}
			tile[n-1] = prev[:len(prev)-1]
		}
		tile = append(tile, l)
	}
	if len(tile) == 0 {
		return nil, &dmm.ParseError{Line: b.line, Msg: "empty tile block"}
	}
	return tile, nil
}
