// Package unpack converts tile maps into expanded, diff friendly text form
// and reads that form back.
package unpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dmmu/dmm"
)

// Sentinel is always the first line of expanded file. Its presence means the
// file must never be expanded again. The text is shared with other map
// tooling and must not change.
const Sentinel = "//MAP CONVERTED BY unpacker.py THIS HEADER COMMENT PREVENTS RECONVERSION, DO NOT REMOVE"

// ErrHeaderConflict is returned by Encode when map header contains a line
// which looks like the start of a tile block.
var ErrHeaderConflict = errors.New("header conflicts with tile block syntax")

type options struct {
	tgm bool
}

// Option modifies Encode behavior.
type Option func(*options)

// WithTGM is accepted for parity with packed map tooling. Expanded text has a
// single layout, so the value does not change the output.
func WithTGM(enable bool) Option {
	return func(o *options) {
		o.tgm = enable
	}
}

// Encode produces expanded text of the map. Grid completeness is verified
// before anything is produced, on error no output is returned.
func Encode(m *dmm.Map, opts ...Option) ([]byte, error) {
	if m == nil {
		return nil, errors.New("nothing to encode")
	}
	o := options{}
	for _, setOpt := range opts {
		setOpt(&o)
	}

	if err := m.CheckComplete(); err != nil {
		return nil, err
	}
	if err := checkHeader(m.Header); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	buf.WriteString(Sentinel)
	buf.WriteByte('\n')
	if len(m.Header) > 0 {
		buf.WriteString(m.Header)
		buf.WriteByte('\n')
	}

	s := tileScanner{w: buf}
	for c := range m.Coords() {
		if c.X == 1 && c.Y == 1 {
			// every level starts with an empty line
			buf.WriteByte('\n')
		}
		t, err := m.TileAt(c)
		if err != nil {
			return nil, err
		}
		writeBlockHeader(buf, c)
		if err := s.tile(t); err != nil {
			return nil, err
		}
		buf.WriteString(")\n")
	}
	return buf.Bytes(), nil
}

// checkHeader refuses header text which could not be told apart from tile
// blocks when expanded text is read back.
func checkHeader(h string) error {
	for i, l := range strings.Split(h, "\n") {
		if blockHeader.MatchString(strings.TrimSuffix(l, "\r")) {
			return fmt.Errorf("header line %d %q: %w", i+1, l, ErrHeaderConflict)
		}
	}
	return nil
}

// writeBlockHeader writes "(x,y,z) = (" line.
func writeBlockHeader(buf *bytes.Buffer, c dmm.Coord) {
	var tmp [64]byte
	b := append(tmp[:0], '(')
	b = strconv.AppendInt(b, int64(c.X), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(c.Y), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(c.Z), 10)
	b = append(b, ") = (\n"...)
	buf.Write(b)
}

// Write encodes the map and writes result to w with a single call. Nothing
// is written when encoding fails.
func Write(w io.Writer, m *dmm.Map, opts ...Option) error {
	data, err := Encode(m, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
