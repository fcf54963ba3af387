package dmm

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is the only text encoding map files may use.
const Encoding = "utf-8"

// DecodeText validates data as UTF-8 and returns it as string with leading
// byte order mark (if any) removed.
func DecodeText(data []byte) (string, error) {
	if off := invalidOffset(data); off >= 0 {
		return "", &EncodingError{Offset: off}
	}
	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("unable to decode %s text: %w", Encoding, err)
	}
	return string(text), nil
}

// invalidOffset returns offset of the first byte which does not start a valid
// UTF-8 sequence or -1.
func invalidOffset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for off := 0; off < len(data); {
		r, size := utf8.DecodeRune(data[off:])
		if r == utf8.RuneError && size <= 1 {
			return off
		}
		off += size
	}
	return -1
}

// FromBytes decodes packed map from raw bytes.
func FromBytes(data []byte) (*Map, error) {
	text, err := DecodeText(data)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// FromFile decodes packed map file.
func FromFile(fname string) (*Map, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	m, err := FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode map '%s': %w", fname, err)
	}
	return m, nil
}
