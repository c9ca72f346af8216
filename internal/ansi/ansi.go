// Package ansi provides ANSI escape codes for colored terminal reports.
// Printers reference these constants instead of spelling escapes inline.
package ansi

import (
	"fmt"
	"strconv"
	"strings"
)

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Blue    = "\033[34m"
	Yellow  = "\033[33m"
	Green   = "\033[32m"
	Red     = "\033[31m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

// ClearLine clears the entire current line.
const ClearLine = "\033[2K"

// Foreground returns a 24-bit foreground code for a "#rrggbb" color, the
// form the wheel palette uses. Anything else yields "" so the text keeps
// the terminal's default color.
func Foreground(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ""
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff)
}
