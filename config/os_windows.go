//go:build windows

package config

import (
	"os"
	"slices"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

const forbiddenNameChars = `<>":/\|?*;`

// reservedNames are device names which cannot be used as a file name with
// any extension.
var reservedNames = []string{
	"CON", "PRN", "AUX", "NUL",
	"COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
	"LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
}

// trimNameEnd removes trailing dots and spaces, Explorer and most APIs strip
// them silently.
func trimNameEnd(name string) string {
	return strings.TrimRight(name, ". ")
}

func isReservedName(name string) bool {
	stem, _, _ := strings.Cut(name, ".")
	return slices.Contains(reservedNames, strings.ToUpper(strings.TrimSpace(stem)))
}

// EnableColorOutput checks if colorized output is possible and enables VT100
// sequence processing in Windows console.
func EnableColorOutput(stream *os.File) bool {
	if noColorRequested() {
		return false
	}
	if windows.RtlGetVersion().MajorVersion < 10 {
		return false
	}
	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
