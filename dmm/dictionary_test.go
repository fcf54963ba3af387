package dmm

import (
	"errors"
	"slices"
	"testing"
)

func TestDictionary_Bijection(t *testing.T) {
	d := NewDictionary()
	if err := d.Put("a", Tile{"/turf/floor", "/area/a"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	tests := []struct {
		name string
		key  Key
		tile Tile
		want error
	}{
		{name: "duplicate key", key: "a", tile: Tile{"/turf/wall"}, want: ErrDuplicateKey},
		{name: "duplicate content", key: "b", tile: Tile{"/turf/floor", "/area/a"}, want: ErrDuplicateTile},
		{name: "empty content", key: "c", tile: nil, want: ErrEmptyTile},
		{name: "empty prototype", key: "d", tile: Tile{"/obj", ""}, want: ErrEmptyTile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.Put(tt.key, tt.tile); !errors.Is(err, tt.want) {
				t.Errorf("Put() error = %v, want %v", err, tt.want)
			}
		})
	}

	if d.Len() != 1 {
		t.Errorf("Len() = %d after rejected puts, want 1", d.Len())
	}
}

func TestDictionary_ContentIdentityIsUnambiguous(t *testing.T) {
	d := NewDictionary()
	if err := d.Put("a", Tile{"ab", "c"}); err != nil {
		t.Fatal(err)
	}
	if err := d.Put("b", Tile{"a", "bc"}); err != nil {
		t.Errorf("different splits of the same characters must be distinct content: %v", err)
	}
	if err := d.Put("c", Tile{"abc"}); err != nil {
		t.Errorf("single element tile must be distinct content: %v", err)
	}
}

func TestDictionary_Lookups(t *testing.T) {
	d := NewDictionary()
	src := Tile{"/obj/item", "/turf/floor"}
	if err := d.Put("x", src); err != nil {
		t.Fatal(err)
	}
	// stored content must not alias caller slice
	src[0] = "/obj/changed"

	tile, ok := d.Tile("x")
	if !ok || !tile.Equal(Tile{"/obj/item", "/turf/floor"}) {
		t.Errorf("Tile(x) = %v, %v", tile, ok)
	}
	k, ok := d.Key(Tile{"/obj/item", "/turf/floor"})
	if !ok || k != "x" {
		t.Errorf("Key() = %q, %v", k, ok)
	}
	if _, ok := d.Key(Tile{"/obj/item"}); ok {
		t.Error("Key() found content that was never added")
	}
}

func TestDictionary_KeysNaturalOrder(t *testing.T) {
	d := NewDictionary()
	for i, k := range []Key{"b", "a10", "a2", "A"} {
		if err := d.Put(k, Tile{string(rune('p' + i))}); err != nil {
			t.Fatal(err)
		}
	}
	want := []Key{"A", "a2", "a10", "b"}
	if got := d.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	var seen []Key
	for k := range d.All() {
		seen = append(seen, k)
	}
	if !slices.Equal(seen, want) {
		t.Errorf("All() order = %v, want %v", seen, want)
	}
}
