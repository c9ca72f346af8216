package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/papapumpkin/natal/internal/ansi"
	"github.com/papapumpkin/natal/internal/aspect"
	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/zodiac"
)

var aspectSymbols = map[string]string{
	aspect.Conjunction:    "☌",
	aspect.Opposition:     "☍",
	aspect.Square:         "□",
	aspect.Trine:          "△",
	aspect.Sextile:        "⚹",
	aspect.Quincunx:       "⚻",
	aspect.SemiSextile:    "⚺",
	aspect.SemiSquare:     "∠",
	aspect.Sesquiquadrate: "⚼",
	aspect.Quintile:       "Q",
	aspect.BiQuintile:     "bQ",
}

var asciiAspectSymbols = map[string]string{
	aspect.Conjunction:    "Cj",
	aspect.Opposition:     "Op",
	aspect.Square:         "Sq",
	aspect.Trine:          "Tr",
	aspect.Sextile:        "Sx",
	aspect.Quincunx:       "Qx",
	aspect.SemiSextile:    "SS",
	aspect.SemiSquare:     "SQ",
	aspect.Sesquiquadrate: "Ses",
	aspect.Quintile:       "Q",
	aspect.BiQuintile:     "bQ",
}

// AspectSymbol returns the symbol for an aspect type, or its first letter.
func AspectSymbol(aspectType string) string {
	if s, ok := aspectSymbols[aspectType]; ok {
		return s
	}
	if aspectType == "" {
		return "?"
	}
	return aspectType[:1]
}

func aspectColor(aspectType string) string {
	switch aspectType {
	case aspect.Opposition, aspect.Square:
		return ansi.Red
	case aspect.Trine, aspect.Sextile:
		return ansi.Blue
	case aspect.Conjunction:
		return ansi.Green
	default:
		return ansi.Yellow
	}
}

// AspectGrid renders the triangular aspect table: one row per aspect body,
// with a symbol where the row body aspects an earlier column body.
type AspectGrid struct {
	// UseColor controls whether ANSI escape codes are emitted.
	UseColor bool

	// ASCII selects two-letter abbreviations instead of astrological symbols.
	ASCII bool
}

// cellWidth is the visible width of one grid column.
const cellWidth = 4

// Render produces the grid string. Bodies appear in catalogue order; only
// bodies present in the chart get a row.
func (g *AspectGrid) Render(snap *chart.Snapshot) string {
	var names []string
	for _, name := range zodiac.AspectBodies() {
		if _, ok := snap.Position(name); ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}

	lookup := make(map[[2]string]aspect.Aspect, len(snap.Aspects))
	for _, a := range snap.Aspects {
		lookup[[2]string{a.A, a.B}] = a
		lookup[[2]string{a.B, a.A}] = a
	}

	var sb strings.Builder
	for i, row := range names {
		sb.WriteString(g.pad(g.label(row), cellWidth))
		for j := 0; j < i; j++ {
			cell := "·"
			code := ansi.Dim
			if a, ok := lookup[[2]string{row, names[j]}]; ok {
				cell = g.symbol(a.Type)
				code = aspectColor(a.Type)
			}
			sb.WriteString(g.colorize(g.pad(cell, cellWidth), code))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *AspectGrid) label(name string) string {
	if g.ASCII {
		return zodiac.Abbrev(name)
	}
	return zodiac.Glyph(name)
}

func (g *AspectGrid) symbol(aspectType string) string {
	if g.ASCII {
		if s, ok := asciiAspectSymbols[aspectType]; ok {
			return s
		}
	}
	return AspectSymbol(aspectType)
}

func (g *AspectGrid) colorize(text, code string) string {
	if !g.UseColor {
		return text
	}
	return code + text + ansi.Reset
}

// pad right-pads s to width visible runes.
func (g *AspectGrid) pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
