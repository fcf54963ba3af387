package unpack

import (
	"io"
	"strings"

	"dmmu/dmm"
)

const (
	indent        = "\t"
	itemSeparator = ",\n"
)

// scanState is a state of the prototype scanner.
type scanState int

const (
	// statePlain is the default state, prototype path and text between blocks.
	statePlain scanState = iota
	// stateQuoted is inside of a string literal started in plain text.
	stateQuoted
	// stateVarBlock is inside of {...} variable assignments.
	stateVarBlock
)

func (s scanState) String() string {
	switch s {
	case statePlain:
		return "plain"
	case stateQuoted:
		return "quoted"
	case stateVarBlock:
		return "varblock"
	default:
		return "unknown"
	}
}

type textWriter interface {
	io.ByteWriter
	io.StringWriter
}

// tileScanner expands prototypes one byte at a time. Every delimiter it
// reacts to is ASCII, so multi-byte UTF-8 sequences pass through untouched.
// Write errors are sticky: after the first failure nothing else is written.
type tileScanner struct {
	w     textWriter
	state scanState
	err   error
}

func (s *tileScanner) emit(str string) {
	if s.err == nil {
		_, s.err = s.w.WriteString(str)
	}
}

func (s *tileScanner) emitByte(c byte) {
	if s.err == nil {
		s.err = s.w.WriteByte(c)
	}
}

// tile writes every prototype of t separated by comma and new line. There is
// no separator after the last one.
func (s *tileScanner) tile(t dmm.Tile) error {
	for i, proto := range t {
		s.prototype(proto)
		if i < len(t)-1 {
			s.emit(itemSeparator)
		}
	}
	return s.err
}

// prototype scans single prototype always starting in plain state.
func (s *tileScanner) prototype(proto string) {
	s.state = statePlain
	for i := range len(proto) {
		switch s.state {
		case statePlain:
			s.plain(proto[i])
		case stateQuoted:
			s.quoted(proto[i])
		case stateVarBlock:
			s.varBlock(proto[i])
		}
	}
}

func (s *tileScanner) plain(c byte) {
	switch c {
	case '"':
		s.state = stateQuoted
		s.emitByte(c)
	case '{':
		s.state = stateVarBlock
		s.emit("{\n" + indent)
	default:
		s.emitByte(c)
	}
}

// quoted does no escape processing, any double quote ends the literal.
func (s *tileScanner) quoted(c byte) {
	if c == '"' {
		s.state = statePlain
	}
	s.emitByte(c)
}

// varBlock puts every assignment on its own indented line. Double quotes are
// not tracked here, so ';' or '}' inside of a string value are treated as
// delimiters.
func (s *tileScanner) varBlock(c byte) {
	switch c {
	case ';':
		s.emit(";\n" + indent)
	case '}':
		s.state = statePlain
		s.emit("\n" + indent + "}")
	default:
		s.emitByte(c)
	}
}

// WriteTile writes expanded form of the tile content to w.
func WriteTile(w textWriter, t dmm.Tile) error {
	s := tileScanner{w: w}
	return s.tile(t)
}

// ExpandTile returns expanded form of the tile content.
func ExpandTile(t dmm.Tile) string {
	var b strings.Builder
	// strings.Builder never fails
	_ = WriteTile(&b, t)
	return b.String()
}
