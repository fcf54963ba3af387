package dmm

import (
	"fmt"
	"strconv"
	"strings"
)

// TGMHeader is the first line of packed maps saved in multi-line (TGM)
// layout.
const TGMHeader = "//MAP CONVERTED BY dmm2tgm.py THIS HEADER COMMENT PREVENTS RECONVERSION, DO NOT REMOVE"

type entry struct {
	key  Key
	tile Tile
	line int
}

type cell struct {
	key  Key
	line int
}

type row struct {
	text string
	line int
}

type parser struct {
	src  string
	pos  int
	line int
}

// Parse decodes packed map text. Both single line (DMM) and multi-line (TGM)
// layouts are accepted and produce identical dictionary content. Leading
// comment lines become map Header. Map size is derived from the largest
// coordinate mentioned in grid blocks; completeness is not checked here.
func Parse(text string) (*Map, error) {
	p := &parser{src: text, line: 1}
	return p.parse()
}

func (p *parser) parse() (*Map, error) {
	var (
		header    []string
		entries   []entry
		keyLength int
		size      Coord
		format    = FormatDmm
		grid      = make(map[Coord]cell)
	)

	for p.skipSpace(); strings.HasPrefix(p.rest(), "//"); p.skipSpace() {
		l := strings.TrimRight(p.readLine(), "\r")
		if l == TGMHeader {
			format = FormatTgm
		}
		header = append(header, l)
	}

	for p.skipSpace(); !p.eof(); p.skipSpace() {
		switch c := p.peek(); {
		case c == '"':
			e, err := p.parseEntry()
			if err != nil {
				return nil, err
			}
			if keyLength == 0 {
				keyLength = len(e.key)
			} else if len(e.key) != keyLength {
				return nil, &ParseError{Line: e.line, Msg: fmt.Sprintf("key %q has length %d, expected %d", e.key, len(e.key), keyLength)}
			}
			entries = append(entries, e)
		case c == '(':
			if keyLength == 0 {
				return nil, p.errorf("grid block precedes dictionary")
			}
			if err := p.parseBlock(keyLength, grid, &size); err != nil {
				return nil, err
			}
		case strings.HasPrefix(p.rest(), "//"):
			p.readLine()
		default:
			return nil, p.errorf("unexpected character %q", c)
		}
	}

	if len(entries) == 0 {
		return nil, p.errorf("no dictionary entries found")
	}
	if len(grid) == 0 {
		return nil, p.errorf("no grid blocks found")
	}

	m := New(keyLength, size)
	m.Header = strings.Join(header, "\n")
	m.Format = format
	for _, e := range entries {
		if err := m.Define(e.key, e.tile); err != nil {
			return nil, &ParseError{Line: e.line, Msg: "invalid dictionary entry", Err: err}
		}
	}
	for c := range m.Coords() {
		cl, ok := grid[c]
		if !ok {
			continue
		}
		if err := m.Place(c, cl.key); err != nil {
			return nil, &ParseError{Line: cl.line, Msg: "invalid grid reference", Err: err}
		}
	}
	return m, nil
}

// parseEntry reads `"key" = (content)`.
func (p *parser) parseEntry() (entry, error) {
	start := p.line
	p.pos++

	end := strings.IndexByte(p.rest(), '"')
	if end < 0 {
		return entry{}, p.errorf("unterminated key")
	}
	key := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	if !validKey(key) {
		return entry{}, &ParseError{Line: start, Msg: fmt.Sprintf("invalid key %q", key)}
	}
	if err := p.expect('=', '('); err != nil {
		return entry{}, err
	}
	tile, err := p.readTile()
	if err != nil {
		return entry{}, err
	}
	return entry{key: Key(key), tile: tile, line: start}, nil
}

// readTile reads comma separated prototypes up to the closing parenthesis.
// Outside of strings line breaks and tabs are dropped and semicolons inside
// variable blocks are always followed by a single space, so both packed
// layouts result in the same content.
func (p *parser) readTile() (Tile, error) {
	var (
		tile           Tile
		cur            strings.Builder
		quoted         bool
		braces, parens int
	)
	for !p.eof() {
		if quoted && p.peek() == '\n' {
			return nil, p.errorf("unterminated string")
		}
		c := p.next()

		if quoted {
			cur.WriteByte(c)
			switch c {
			case '\\':
				if !p.eof() && p.peek() != '\n' {
					cur.WriteByte(p.next())
				}
			case '"':
				quoted = false
			}
			continue
		}

		switch c {
		case '\r', '\n', '\t':
		case '"':
			quoted = true
			cur.WriteByte(c)
		case '{':
			braces++
			cur.WriteByte(c)
		case '}':
			if braces == 0 {
				return nil, p.errorf("unbalanced '}'")
			}
			braces--
			cur.WriteByte(c)
		case '(':
			parens++
			cur.WriteByte(c)
		case ')':
			if braces == 0 && parens == 0 {
				if cur.Len() == 0 {
					return nil, &ParseError{Line: p.line, Msg: "invalid dictionary entry", Err: ErrEmptyTile}
				}
				return append(tile, cur.String()), nil
			}
			if parens > 0 {
				parens--
			}
			cur.WriteByte(c)
		case ';':
			cur.WriteByte(c)
			if braces > 0 {
				p.skipSpace()
				if !p.eof() && p.peek() != '}' {
					cur.WriteByte(' ')
				}
			}
		case ',':
			if braces == 0 && parens == 0 {
				if cur.Len() == 0 {
					return nil, &ParseError{Line: p.line, Msg: "empty prototype in dictionary entry", Err: ErrEmptyTile}
				}
				tile = append(tile, cur.String())
				cur.Reset()
				continue
			}
			cur.WriteByte(c)
		default:
			cur.WriteByte(c)
		}
	}
	return nil, p.errorf("unterminated dictionary entry")
}

// parseBlock reads `(x,y,z) = {"rows"}`. The first row is the northernmost
// one (highest y), every row is split into keys of keyLength characters.
func (p *parser) parseBlock(keyLength int, grid map[Coord]cell, size *Coord) error {
	start := p.line
	origin, err := p.readCoord()
	if err != nil {
		return err
	}
	if err := p.expect('=', '{', '"'); err != nil {
		return err
	}
	end := strings.Index(p.rest(), `"}`)
	if end < 0 {
		return p.errorf("unterminated grid block")
	}
	body := p.src[p.pos : p.pos+end]
	p.advance(end + 2)

	var rows []row
	for i, l := range strings.Split(body, "\n") {
		if l = strings.TrimRight(l, "\r"); len(l) > 0 {
			rows = append(rows, row{text: l, line: start + i})
		}
	}
	if len(rows) == 0 {
		return &ParseError{Line: start, Msg: "empty grid block"}
	}

	width := len(rows[0].text)
	for i, r := range rows {
		if len(r.text) != width {
			return &ParseError{Line: r.line, Msg: fmt.Sprintf("row length %d differs from first row length %d", len(r.text), width)}
		}
		if len(r.text)%keyLength != 0 {
			return &ParseError{Line: r.line, Msg: fmt.Sprintf("row length %d is not a multiple of key length %d", len(r.text), keyLength)}
		}
		y := origin.Y + len(rows) - 1 - i
		for j := 0; j*keyLength < len(r.text); j++ {
			c := Coord{X: origin.X + j, Y: y, Z: origin.Z}
			if prev, dup := grid[c]; dup {
				return &ParseError{Line: r.line, Msg: fmt.Sprintf("coordinate %s already defined on line %d", c, prev.line)}
			}
			grid[c] = cell{key: Key(r.text[j*keyLength : (j+1)*keyLength]), line: r.line}
			size.X, size.Y, size.Z = max(size.X, c.X), max(size.Y, c.Y), max(size.Z, c.Z)
		}
	}
	return nil
}

func (p *parser) readCoord() (Coord, error) {
	var v [3]int
	if err := p.expect('('); err != nil {
		return Coord{}, err
	}
	for i := range v {
		if i > 0 {
			if err := p.expect(','); err != nil {
				return Coord{}, err
			}
		}
		n, err := p.readInt()
		if err != nil {
			return Coord{}, err
		}
		v[i] = n
	}
	if err := p.expect(')'); err != nil {
		return Coord{}, err
	}
	return Coord{X: v[0], Y: v[1], Z: v[2]}, nil
}

func (p *parser) readInt() (int, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errorf("expected number")
	}
	if n < 1 {
		return 0, p.errorf("coordinate %d is not positive", n)
	}
	return n, nil
}

func (p *parser) expect(tokens ...byte) error {
	for _, tok := range tokens {
		p.skipSpace()
		if p.eof() || p.peek() != tok {
			return p.errorf("expected %q", tok)
		}
		p.pos++
	}
	return nil
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) rest() string {
	return p.src[p.pos:]
}

func (p *parser) next() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
	}
	return c
}

func (p *parser) advance(n int) {
	p.line += strings.Count(p.src[p.pos:p.pos+n], "\n")
	p.pos += n
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.next()
		default:
			return
		}
	}
}

func (p *parser) readLine() string {
	end := strings.IndexByte(p.rest(), '\n')
	if end < 0 {
		l := p.rest()
		p.pos = len(p.src)
		return l
	}
	l := p.src[p.pos : p.pos+end]
	p.advance(end + 1)
	return l
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}
