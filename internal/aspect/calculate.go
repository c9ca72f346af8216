package aspect

import (
	"math"

	"github.com/papapumpkin/natal/internal/zodiac"
)

// Aspect is a classified relationship between two aspect bodies.
type Aspect struct {
	Type      string  `json:"type" toml:"type" yaml:"type"`
	A         string  `json:"a" toml:"a" yaml:"a"`
	B         string  `json:"b" toml:"b" yaml:"b"`
	AngleDiff float64 `json:"angleDiff" toml:"angle_diff" yaml:"angleDiff"`
	Orb       float64 `json:"orb" toml:"orb" yaml:"orb"`
	Color     string  `json:"color" toml:"color" yaml:"color"`
	Weight    float64 `json:"weight" toml:"weight" yaml:"weight"`
	Style     Style   `json:"style" toml:"style" yaml:"style"`
}

// Involves reports whether the aspect connects the named body.
func (a Aspect) Involves(name string) bool {
	return a.A == name || a.B == name
}

// Separation returns the shortest-arc distance between two longitudes,
// in [0, 180].
func Separation(a, b float64) float64 {
	diff := math.Abs(zodiac.Normalize(a) - zodiac.Normalize(b))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// Classify scans the table in order and returns the first definition whose
// orb admits diff.
func (t Table) Classify(diff float64) (Definition, bool) {
	for _, d := range t {
		if math.Abs(diff-d.Angle) <= d.Orb {
			return d, true
		}
	}
	return Definition{}, false
}

// Between classifies the pair (a, b). It is symmetric in its arguments
// apart from the A/B names recorded on the result.
func (t Table) Between(a, b zodiac.Position) (Aspect, bool) {
	diff := Separation(a.AbsoluteDegree, b.AbsoluteDegree)
	d, ok := t.Classify(diff)
	if !ok {
		return Aspect{}, false
	}
	return Aspect{
		Type:      d.Name,
		A:         a.Name,
		B:         b.Name,
		AngleDiff: diff,
		Orb:       math.Abs(diff - d.Angle),
		Color:     d.Color,
		Weight:    d.Weight,
		Style:     d.Style,
	}, true
}

// Calculate returns one aspect per matching unordered pair of aspect
// bodies, in input order. Bodies outside the aspect allow-list are ignored.
func Calculate(positions []zodiac.Position, table Table) []Aspect {
	var bodies []zodiac.Position
	for _, p := range positions {
		if zodiac.IsAspectBody(p.Name) {
			bodies = append(bodies, p)
		}
	}

	var out []Aspect
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].Name == bodies[j].Name {
				continue
			}
			if a, ok := table.Between(bodies[i], bodies[j]); ok {
				out = append(out, a)
			}
		}
	}
	return out
}
