package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"dmmu/unpack"
)

// sniffLen is enough for zip signature and expanded map sentinel.
const sniffLen = 262

var (
	typeExpanded = filetype.NewType("dmmu", "text/x-dmm-expanded")
	typePacked   = filetype.NewType("dmm", "text/x-dmm")
)

func init() {
	// expanded first, its sentinel is a comment which would also pass packed check
	filetype.AddMatcher(typeExpanded, isExpandedMap)
	filetype.AddMatcher(typePacked, isPackedMap)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func isExpandedMap(buf []byte) bool {
	return bytes.HasPrefix(bytes.TrimPrefix(buf, utf8BOM), []byte(unpack.Sentinel))
}

// isPackedMap accepts text which starts with either dictionary entry or
// comment (header of TGM and other converted maps).
func isPackedMap(buf []byte) bool {
	buf = bytes.TrimLeft(bytes.TrimPrefix(buf, utf8BOM), " \t\r\n")
	return !isExpandedMap(buf) && (bytes.HasPrefix(buf, []byte{'"'}) || bytes.HasPrefix(buf, []byte("//")))
}

func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

func readFileHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readHead(f)
}

func isArchiveFile(path string) (bool, error) {
	head, err := readFileHead(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// sourceKind classifies map source by its head.
type sourceKind int

const (
	kindUnknown sourceKind = iota
	kindPacked
	kindExpanded
)

func detectKind(head []byte) sourceKind {
	switch {
	case filetype.IsType(head, typeExpanded):
		return kindExpanded
	case filetype.IsType(head, typePacked):
		return kindPacked
	}
	return kindUnknown
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
