// Package houses derives whole-sign house cusps from the Ascendant,
// synthesizes the Descendant and Imum Coeli, and assigns every body a house.
package houses

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/natal/internal/zodiac"
)

// Count is the number of houses.
const Count = 12

// ErrNoAscendant indicates derivation was attempted without an ASC position.
var ErrNoAscendant = errors.New("houses: no ASC position")

// Cusp is the starting longitude of one house.
type Cusp struct {
	House          int     `json:"house" toml:"house" yaml:"house"`
	AbsoluteDegree float64 `json:"absoluteDegree" toml:"absolute_degree" yaml:"absoluteDegree"`
}

// Result is the output of Derive.
type Result struct {
	Cusps     [Count]Cusp
	Positions []zodiac.Position
}

// Derive computes cusps, synthesizes missing DSC and IC axes and assigns
// houses. The input slice is not modified. Running Derive on its own
// output yields the same result.
func Derive(positions []zodiac.Position) (Result, error) {
	asc, ok := zodiac.Find(positions, zodiac.ASC)
	if !ok {
		return Result{}, ErrNoAscendant
	}

	out := make([]zodiac.Position, len(positions), len(positions)+2)
	copy(out, positions)

	if _, ok := zodiac.Find(out, zodiac.DSC); !ok {
		out = append(out, synthesize(zodiac.DSC, asc))
	}
	if mc, ok := zodiac.Find(out, zodiac.MC); ok {
		if _, ok := zodiac.Find(out, zodiac.IC); !ok {
			out = append(out, synthesize(zodiac.IC, mc))
		}
	}

	for i := range out {
		out[i].House = HouseOf(out[i].Sign, asc.Sign)
	}

	return Result{Cusps: Cusps(asc.AbsoluteDegree), Positions: out}, nil
}

// Cusps returns the twelve cusps measured from the Ascendant longitude.
func Cusps(ascDegree float64) [Count]Cusp {
	var cusps [Count]Cusp
	for i := range cusps {
		cusps[i] = Cusp{
			House:          i + 1,
			AbsoluteDegree: zodiac.Normalize(ascDegree + float64(i*zodiac.DegreesPerSign)),
		}
	}
	return cusps
}

// HouseOf returns the whole-sign house of a body in sign when the
// Ascendant is in ascSign.
func HouseOf(sign, ascSign zodiac.Sign) int {
	h := int(sign) - int(ascSign) + 1
	if h <= 0 {
		h += Count
	}
	return h
}

// Ordinal returns the dictionary key for a house: "1st", "2nd", ... "12th".
func Ordinal(house int) string {
	suffix := "th"
	switch house {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", house, suffix)
}

// synthesize places name opposite from, with every field populated.
func synthesize(name string, from zodiac.Position) zodiac.Position {
	p := zodiac.FromAbsolute(name, from.AbsoluteDegree+180)
	p.Synthesized = true
	return p
}
