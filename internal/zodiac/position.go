package zodiac

import (
	"fmt"
	"math"
)

// MinutesPerCircle is the number of arc-minutes in a full circle.
const MinutesPerCircle = 360 * 60

// Position is one chart body at a fixed ecliptic longitude. Every field is
// populated at construction, including for synthesized axes.
type Position struct {
	Name           string  `json:"name" toml:"name" yaml:"name"`
	Sign           Sign    `json:"sign" toml:"sign" yaml:"sign"`
	Degree         int     `json:"degree" toml:"degree" yaml:"degree"`
	Minute         int     `json:"minute" toml:"minute" yaml:"minute"`
	Retrograde     bool    `json:"retrograde,omitempty" toml:"retrograde,omitempty" yaml:"retrograde,omitempty"`
	AbsoluteDegree float64 `json:"absoluteDegree" toml:"absolute_degree" yaml:"absoluteDegree"`
	VisualDegree   float64 `json:"visualDegree" toml:"visual_degree" yaml:"visualDegree"`
	House          int     `json:"house" toml:"house" yaml:"house"`
	Synthesized    bool    `json:"synthesized,omitempty" toml:"synthesized,omitempty" yaml:"synthesized,omitempty"`
}

// NewPosition builds a position from sign-relative coordinates. The caller
// is responsible for range-checking degree and minute.
func NewPosition(name string, sign Sign, degree, minute int, retrograde bool) Position {
	abs := Normalize(sign.Start() + float64(degree) + float64(minute)/60)
	return Position{
		Name:           name,
		Sign:           sign,
		Degree:         degree,
		Minute:         minute,
		Retrograde:     retrograde,
		AbsoluteDegree: abs,
		VisualDegree:   abs,
	}
}

// FromAbsolute builds a position from an absolute longitude, back-computing
// sign, degree and minute. The longitude is snapped to the nearest whole
// arc-minute so the three fields always agree with AbsoluteDegree.
func FromAbsolute(name string, abs float64) Position {
	total := int(math.Round(Normalize(abs)*60)) % MinutesPerCircle
	sign := Sign(total / (DegreesPerSign * 60))
	rem := total % (DegreesPerSign * 60)
	snapped := float64(total) / 60
	return Position{
		Name:           name,
		Sign:           sign,
		Degree:         rem / 60,
		Minute:         rem % 60,
		AbsoluteDegree: snapped,
		VisualDegree:   snapped,
	}
}

// DMS formats the in-sign degree and minute as D°MM'.
func (p Position) DMS() string {
	return FormatDMS(p.Degree, p.Minute)
}

// FormatDMS formats degree and minute as D°MM' with a zero-padded minute.
func FormatDMS(degree, minute int) string {
	return fmt.Sprintf("%d°%02d'", degree, minute)
}

// Kind returns the catalogue kind of the body.
func (p Position) Kind() Kind {
	return KindOf(p.Name)
}

// Find returns the first position with the given name.
func Find(positions []Position, name string) (Position, bool) {
	for _, p := range positions {
		if p.Name == name {
			return p, true
		}
	}
	return Position{}, false
}
