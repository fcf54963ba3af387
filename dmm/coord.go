package dmm

import (
	"fmt"
	"iter"
)

// Coord addresses a single tile. Coordinates are 1-based, z is the level.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// In reports whether c lies within the box [1..size.X]x[1..size.Y]x[1..size.Z].
func (c Coord) In(size Coord) bool {
	return c.X >= 1 && c.X <= size.X &&
		c.Y >= 1 && c.Y <= size.Y &&
		c.Z >= 1 && c.Z <= size.Z
}

// volume returns number of coordinates in the box defined by size.
func (c Coord) volume() int {
	if c.X <= 0 || c.Y <= 0 || c.Z <= 0 {
		return 0
	}
	return c.X * c.Y * c.Z
}

// Walk yields every coordinate of the box defined by size in canonical
// order: z is outermost, then x, with y changing fastest. Expanded files are
// written in this order.
func Walk(size Coord) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for z := 1; z <= size.Z; z++ {
			for x := 1; x <= size.X; x++ {
				for y := 1; y <= size.Y; y++ {
					if !yield(Coord{X: x, Y: y, Z: z}) {
						return
					}
				}
			}
		}
	}
}
