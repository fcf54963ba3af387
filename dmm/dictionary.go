package dmm

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

// Key is compact dictionary identifier used in packed grid.
type Key string

// Tile is an ordered list of prototypes stacked on a single coordinate. Each
// element is prototype path optionally followed by {...} block of variable
// assignments.
type Tile []string

// identity returns unambiguous representation of tile content usable as a
// map key.
func (t Tile) identity() string {
	var b strings.Builder
	for _, s := range t {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}
	return b.String()
}

// Equal reports whether both tiles have the same content in the same order.
func (t Tile) Equal(o Tile) bool {
	return slices.Equal(t, o)
}

// Dictionary is a bijection between keys and tile content. It is built from
// two maps which are always updated together.
type Dictionary struct {
	tiles map[Key]Tile
	keys  map[string]Key
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		tiles: make(map[Key]Tile),
		keys:  make(map[string]Key),
	}
}

// Put adds new entry. Neither the key nor the content may already be present
// and every prototype must be non empty.
func (d *Dictionary) Put(k Key, t Tile) error {
	if len(t) == 0 {
		return fmt.Errorf("key %q: %w", k, ErrEmptyTile)
	}
	if i := slices.Index(t, ""); i >= 0 {
		return fmt.Errorf("key %q: prototype %d: %w", k, i, ErrEmptyTile)
	}
	if _, exists := d.tiles[k]; exists {
		return fmt.Errorf("key %q: %w", k, ErrDuplicateKey)
	}
	id := t.identity()
	if other, exists := d.keys[id]; exists {
		return fmt.Errorf("key %q repeats content of key %q: %w", k, other, ErrDuplicateTile)
	}
	d.tiles[k] = slices.Clone(t)
	d.keys[id] = k
	return nil
}

// Tile returns content for the key.
func (d *Dictionary) Tile(k Key) (Tile, bool) {
	t, ok := d.tiles[k]
	return t, ok
}

// Key returns key for the content.
func (d *Dictionary) Key(t Tile) (Key, bool) {
	k, ok := d.keys[t.identity()]
	return k, ok
}

func (d *Dictionary) Len() int {
	return len(d.tiles)
}

// Keys returns all keys in natural order.
func (d *Dictionary) Keys() []Key {
	names := make([]string, 0, len(d.tiles))
	for k := range maps.Keys(d.tiles) {
		names = append(names, string(k))
	}
	sort.Sort(natural.StringSlice(names))

	keys := make([]Key, len(names))
	for i, n := range names {
		keys[i] = Key(n)
	}
	return keys
}

// All iterates over entries in natural key order.
func (d *Dictionary) All() iter.Seq2[Key, Tile] {
	return func(yield func(Key, Tile) bool) {
		for _, k := range d.Keys() {
			if !yield(k, d.tiles[k]) {
				return
			}
		}
	}
}
