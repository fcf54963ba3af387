package dmm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateKey  = errors.New("duplicate dictionary key")
	ErrDuplicateTile = errors.New("duplicate dictionary content")
	ErrEmptyTile     = errors.New("empty tile content")
)

// ReferentialIntegrityError is returned when grid references a key absent
// from the dictionary or when coordinate outside of map bounds is requested.
type ReferentialIntegrityError struct {
	Coord  Coord
	Key    Key
	Reason string
}

func (e *ReferentialIntegrityError) Error() string {
	if len(e.Key) == 0 {
		return fmt.Sprintf("referential integrity violation at %s: %s", e.Coord, e.Reason)
	}
	return fmt.Sprintf("referential integrity violation at %s, key %q: %s", e.Coord, e.Key, e.Reason)
}

// IncompleteGridError lists coordinates inside declared map bounds which have
// no tile assigned. Missing is in canonical order.
type IncompleteGridError struct {
	Size    Coord
	Missing []Coord
}

func (e *IncompleteGridError) Error() string {
	const shown = 5

	var b strings.Builder
	fmt.Fprintf(&b, "grid %dx%dx%d is incomplete, %d coordinate(s) missing: ", e.Size.X, e.Size.Y, e.Size.Z, len(e.Missing))
	for i, c := range e.Missing {
		if i == shown {
			b.WriteString(", ...")
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// EncodingError reports input which is not valid UTF-8.
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("input is not valid %s at byte offset %d", Encoding, e.Offset)
}

// ParseError reports malformed packed map text.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
