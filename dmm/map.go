// Package dmm holds in-memory model of a tile map: the grid of coordinates
// referencing dictionary keys and the dictionary itself. It also knows how to
// read packed map files.
package dmm

import (
	"fmt"
	"iter"
)

// Map is a fully decoded tile map. It is populated once, either by Parse or
// by Builder, and treated as read-only afterwards. Map is not safe for
// concurrent modification.
type Map struct {
	// KeyLength is the width of dictionary keys in the packed source.
	KeyLength int
	// Size holds maximum coordinate on every axis.
	Size Coord
	// Header is opaque leading text of the source, kept verbatim.
	Header string
	// Format is layout of the packed source.
	Format Format

	dict *Dictionary
	grid map[Coord]Key
}

func New(keyLength int, size Coord) *Map {
	return &Map{
		KeyLength: keyLength,
		Size:      size,
		dict:      NewDictionary(),
		grid:      make(map[Coord]Key, size.volume()),
	}
}

func (m *Map) Dictionary() *Dictionary {
	return m.dict
}

// Define adds dictionary entry.
func (m *Map) Define(k Key, t Tile) error {
	if m.KeyLength > 0 && len(k) != m.KeyLength {
		return fmt.Errorf("key %q has length %d, map uses %d", k, len(k), m.KeyLength)
	}
	return m.dict.Put(k, t)
}

// Place assigns key to coordinate. Key must be already defined.
func (m *Map) Place(c Coord, k Key) error {
	if !c.In(m.Size) {
		return &ReferentialIntegrityError{Coord: c, Key: k, Reason: fmt.Sprintf("coordinate is outside of map bounds %s", m.Size)}
	}
	if _, ok := m.dict.Tile(k); !ok {
		return &ReferentialIntegrityError{Coord: c, Key: k, Reason: "key is not in dictionary"}
	}
	m.grid[c] = k
	return nil
}

// KeyAt returns key placed on the coordinate.
func (m *Map) KeyAt(c Coord) (Key, error) {
	if !c.In(m.Size) {
		return "", &ReferentialIntegrityError{Coord: c, Reason: fmt.Sprintf("coordinate is outside of map bounds %s", m.Size)}
	}
	k, ok := m.grid[c]
	if !ok {
		return "", &ReferentialIntegrityError{Coord: c, Reason: "coordinate has no key"}
	}
	return k, nil
}

// TileAt resolves coordinate through the dictionary.
func (m *Map) TileAt(c Coord) (Tile, error) {
	k, err := m.KeyAt(c)
	if err != nil {
		return nil, err
	}
	t, ok := m.dict.Tile(k)
	if !ok {
		return nil, &ReferentialIntegrityError{Coord: c, Key: k, Reason: "key is not in dictionary"}
	}
	return t, nil
}

// Placed returns number of coordinates with assigned keys.
func (m *Map) Placed() int {
	return len(m.grid)
}

// Coords iterates over every coordinate within map bounds in canonical order.
func (m *Map) Coords() iter.Seq[Coord] {
	return Walk(m.Size)
}

// CheckComplete makes sure every coordinate within bounds resolves to a tile.
// Missing coordinates are reported first as IncompleteGridError, dangling keys
// as ReferentialIntegrityError.
func (m *Map) CheckComplete() error {
	var missing []Coord
	for c := range m.Coords() {
		if _, ok := m.grid[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &IncompleteGridError{Size: m.Size, Missing: missing}
	}
	for c := range m.Coords() {
		if _, err := m.TileAt(c); err != nil {
			return err
		}
	}
	return nil
}
