package config

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// fallbackFileName is used when nothing is left of the name after cleaning.
const fallbackFileName = "_bad_map_name_"

// maxFileNameLen is the limit in bytes for a cleaned name, leaving room for
// the output extension within common file system limits.
const maxFileNameLen = 200

// CleanFileName makes in usable as a single file name on the current
// platform. Separators and control characters are dropped and leading dots
// are removed so the result is never hidden. Names reserved by the platform
// get '_' prefix and long names are cut on a rune boundary.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(forbiddenNameChars, sym) {
			return -1
		}
		return sym
	}, in)
	out = trimNameEnd(strings.TrimLeft(out, "."))
	for len(out) > maxFileNameLen {
		_, size := utf8.DecodeLastRuneInString(out)
		out = out[:len(out)-size]
	}
	out = trimNameEnd(out)
	if len(out) == 0 {
		return fallbackFileName
	}
	if isReservedName(out) {
		out = "_" + out
	}
	return out
}

// noColorRequested honors NO_COLOR convention and dumb terminals.
func noColorRequested() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return true
	}
	return os.Getenv("TERM") == "dumb"
}
