//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

const forbiddenNameChars = "/:"

func trimNameEnd(name string) string {
	return name
}

func isReservedName(string) bool {
	return false
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	if noColorRequested() {
		return false
	}
	return term.IsTerminal(int(stream.Fd()))
}
