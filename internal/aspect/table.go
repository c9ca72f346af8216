// Package aspect classifies angular separations between chart bodies
// against an ordered table of aspect definitions.
package aspect

import (
	"fmt"
	"strings"
)

// Style is the stroke pattern used to draw an aspect line.
type Style string

// Stroke styles.
const (
	Solid  Style = "solid"
	Dotted Style = "dotted"
	Dashed Style = "dashed"
)

// Aspect type names.
const (
	Conjunction    = "Conjunction"
	Opposition     = "Opposition"
	Square         = "Square"
	Trine          = "Trine"
	Sextile        = "Sextile"
	Quincunx       = "Quincunx"
	SemiSextile    = "Semi-sextile"
	SemiSquare     = "Semi-square"
	Sesquiquadrate = "Sesquiquadrate"
	Quintile       = "Quintile"
	BiQuintile     = "Bi-quintile"
)

// Table names accepted by TableByName.
const (
	TableCanonical = "canonical"
	TableExtended  = "extended"
)

// Definition is one aspect rule: the exact angle, the allowed orb, and
// the drawing attributes copied onto every matching Aspect.
type Definition struct {
	Name   string
	Angle  float64
	Orb    float64
	Color  string
	Weight float64
	Style  Style
}

// Table is an ordered list of definitions. Order is priority: the first
// definition a separation satisfies wins.
type Table []Definition

var canonical = Table{
	{Conjunction, 0, 8, "#228B22", 2.5, Solid},
	{Opposition, 180, 8, "#FF0000", 2.5, Solid},
	{Square, 90, 8, "#FF0000", 2.5, Solid},
	{Trine, 120, 8, "#0000FF", 2, Solid},
	{Sextile, 60, 6, "#0000FF", 2, Dotted},
	{Quincunx, 150, 3, "#B8860B", 1.5, Dashed},
}

var minor = Table{
	{SemiSextile, 30, 2, "#888888", 1, Dotted},
	{SemiSquare, 45, 2, "#888888", 1, Dotted},
	{Sesquiquadrate, 135, 2, "#888888", 1, Dotted},
	{Quintile, 72, 1.5, "#8A2BE2", 1, Dotted},
	{BiQuintile, 144, 1.5, "#8A2BE2", 1, Dotted},
}

// Canonical returns the six major aspects.
func Canonical() Table {
	return append(Table(nil), canonical...)
}

// Extended returns the canonical table followed by the five minor aspects.
func Extended() Table {
	t := make(Table, 0, len(canonical)+len(minor))
	t = append(t, canonical...)
	return append(t, minor...)
}

// TableByName returns the named table. An empty name selects the canonical
// table.
func TableByName(name string) (Table, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TableCanonical:
		return Canonical(), nil
	case TableExtended:
		return Extended(), nil
	default:
		return nil, fmt.Errorf("unknown aspect table %q (want %q or %q)", name, TableCanonical, TableExtended)
	}
}

// Lookup returns the definition with the given name.
func (t Table) Lookup(name string) (Definition, bool) {
	for _, d := range t {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
