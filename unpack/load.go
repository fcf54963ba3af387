package unpack

import (
	"bytes"
	"errors"
	"strings"

	"dmmu/dmm"
)

// ErrAlreadyConverted is returned when source starts with Sentinel. Expanding
// such file again would corrupt it.
var ErrAlreadyConverted = errors.New("map is already in expanded form")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder produces map model from decoded text.
type Decoder interface {
	Decode(text string) (*dmm.Map, error)
}

// DecoderFunc adapts ordinary function to Decoder.
type DecoderFunc func(text string) (*dmm.Map, error)

func (f DecoderFunc) Decode(text string) (*dmm.Map, error) {
	return f(text)
}

var (
	// Packed decodes packed (DMM and TGM) map text.
	Packed Decoder = DecoderFunc(dmm.Parse)
	// Expanded decodes text produced by Encode.
	Expanded Decoder = DecoderFunc(Parse)
)

// IsConverted checks whether data starts with Sentinel line.
func IsConverted(data []byte) bool {
	data = bytes.TrimPrefix(data, utf8BOM)
	line, _, _ := bytes.Cut(data, []byte{'\n'})
	return string(bytes.TrimSuffix(line, []byte{'\r'})) == Sentinel
}

func isConvertedText(text string) bool {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSuffix(line, "\r") == Sentinel
}

// Load validates encoding of the raw source, refuses already converted input
// and decodes it with dec (Packed when nil).
func Load(data []byte, dec Decoder) (*dmm.Map, error) {
	text, err := dmm.DecodeText(data)
	if err != nil {
		return nil, err
	}
	return LoadText(text, dec)
}

// LoadText is Load for already decoded text.
func LoadText(text string, dec Decoder) (*dmm.Map, error) {
	if isConvertedText(text) {
		return nil, ErrAlreadyConverted
	}
	if dec == nil {
		dec = Packed
	}
	return dec.Decode(text)
}

// Open decodes map in either form, choosing decoder by presence of Sentinel.
func Open(data []byte) (*dmm.Map, error) {
	text, err := dmm.DecodeText(data)
	if err != nil {
		return nil, err
	}
	if isConvertedText(text) {
		return Expanded.Decode(text)
	}
	return Packed.Decode(text)
}
