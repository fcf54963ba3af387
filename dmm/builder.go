package dmm

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/multierr"
)

// keyAlphabet is used by the map editor for dictionary keys.
const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// KeyWidth returns minimal key length able to address n distinct tiles.
func KeyWidth(n int) int {
	width, capacity := 1, len(keyAlphabet)
	for capacity < n {
		width++
		capacity *= len(keyAlphabet)
	}
	return width
}

// MakeKey returns i-th key of the given width.
func MakeKey(i, width int) Key {
	buf := make([]byte, width)
	for pos := width - 1; pos >= 0; pos-- {
		buf[pos] = keyAlphabet[i%len(keyAlphabet)]
		i /= len(keyAlphabet)
	}
	return Key(buf)
}

func validKey(k string) bool {
	for i := range len(k) {
		if strings.IndexByte(keyAlphabet, k[i]) < 0 {
			return false
		}
	}
	return len(k) > 0
}

// Builder assembles Map from tile content, assigning dictionary keys
// automatically. Equal content always shares a key. Keys are handed out in
// canonical coordinate order.
type Builder struct {
	size      Coord
	header    string
	keyLength int
	format    Format
	cells     map[Coord]Tile
	err       error
}

func NewBuilder(size Coord) *Builder {
	return &Builder{size: size, cells: make(map[Coord]Tile)}
}

// Header sets opaque leading text.
func (b *Builder) Header(h string) *Builder {
	b.header = h
	return b
}

// KeyLength requests specific key width. If it is not enough to address all
// distinct tiles Build fails.
func (b *Builder) KeyLength(n int) *Builder {
	b.keyLength = n
	return b
}

func (b *Builder) Format(f Format) *Builder {
	b.format = f
	return b
}

// Set places tile content on the coordinate, replacing previous content.
func (b *Builder) Set(c Coord, content ...string) *Builder {
	if !c.In(b.size) {
		b.err = multierr.Append(b.err, &ReferentialIntegrityError{Coord: c, Reason: fmt.Sprintf("coordinate is outside of map bounds %s", b.size)})
		return b
	}
	if len(content) == 0 || slices.Contains(content, "") {
		b.err = multierr.Append(b.err, fmt.Errorf("coordinate %s: %w", c, ErrEmptyTile))
		return b
	}
	b.cells[c] = Tile(content)
	return b
}

// Build creates the Map. Coordinates never set remain empty, so it is
// possible to build an incomplete map.
func (b *Builder) Build() (*Map, error) {
	if b.err != nil {
		return nil, b.err
	}

	var (
		order []Tile
		ids   = make(map[string]int)
		at    = make(map[Coord]int, len(b.cells))
	)
	for c := range Walk(b.size) {
		t, ok := b.cells[c]
		if !ok {
			continue
		}
		id := t.identity()
		n, seen := ids[id]
		if !seen {
			n = len(order)
			ids[id] = n
			order = append(order, t)
		}
		at[c] = n
	}

	width := KeyWidth(len(order))
	if b.keyLength > 0 {
		if b.keyLength < width {
			return nil, fmt.Errorf("key length %d cannot address %d distinct tiles", b.keyLength, len(order))
		}
		width = b.keyLength
	}

	m := New(width, b.size)
	m.Header = b.header
	m.Format = b.format
	for i, t := range order {
		if err := m.Define(MakeKey(i, width), t); err != nil {
			return nil, err
		}
	}
	for c, n := range at {
		if err := m.Place(c, MakeKey(n, width)); err != nil {
			return nil, err
		}
	}
	return m, nil
}
