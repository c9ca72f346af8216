// Package zodiac holds the fixed zodiac catalogue (signs, elements, bodies,
// glyphs) and the Position model shared by every stage of the chart pipeline.
package zodiac

import (
	"fmt"
	"math"
)

// Sign is one of the twelve zodiac signs, ordered from Aries.
type Sign int

// The twelve canonical signs in ecliptic order.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignCount is the number of zodiac signs.
const SignCount = 12

// DegreesPerSign is the ecliptic width of one sign.
const DegreesPerSign = 30

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signGlyphs = [SignCount]string{
	"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓",
}

// String returns the canonical English sign name.
func (s Sign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

// Glyph returns the astrological symbol for s.
func (s Sign) Glyph() string {
	if !s.Valid() {
		return "?"
	}
	return signGlyphs[s]
}

// Abbrev returns a three-letter ASCII abbreviation ("Ari", "Tau", ...).
func (s Sign) Abbrev() string {
	if !s.Valid() {
		return "???"
	}
	return signNames[s][:3]
}

// Start returns the absolute degree at which s begins.
func (s Sign) Start() float64 {
	return float64(int(s) * DegreesPerSign)
}

// Element returns the classical element of s.
func (s Sign) Element() Element {
	return Element(int(s) % 4)
}

// MarshalText encodes the sign as its canonical name.
func (s Sign) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid sign %d", int(s))
	}
	return []byte(signNames[s]), nil
}

// UnmarshalText decodes a canonical sign name.
func (s *Sign) UnmarshalText(text []byte) error {
	parsed, ok := ParseSign(string(text))
	if !ok {
		return fmt.Errorf("unknown sign %q", string(text))
	}
	*s = parsed
	return nil
}

// ParseSign looks up a sign by its canonical, case-sensitive English name.
func ParseSign(name string) (Sign, bool) {
	for i, n := range signNames {
		if n == name {
			return Sign(i), true
		}
	}
	return 0, false
}

// SignAt returns the sign containing the given absolute degree.
func SignAt(abs float64) Sign {
	return Sign(int(math.Floor(Normalize(abs)/DegreesPerSign)) % SignCount)
}

// Signs returns the twelve signs in order.
func Signs() []Sign {
	out := make([]Sign, SignCount)
	for i := range out {
		out[i] = Sign(i)
	}
	return out
}

// Element is a classical element grouping signs by triplicity.
type Element int

// The four elements, in the order Aries starts them.
const (
	Fire Element = iota
	Earth
	Air
	Water
)

var elementNames = [4]string{"Fire", "Earth", "Air", "Water"}

var elementColors = [4]string{"#FF6B6B", "#4ECDC4", "#95E1D3", "#A8E6CF"}

// String returns the element name.
func (e Element) String() string {
	if e < Fire || e > Water {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Color returns the hex fill used for sign sectors of this element.
func (e Element) Color() string {
	if e < Fire || e > Water {
		return "#CCCCCC"
	}
	return elementColors[e]
}

// Normalize reduces deg into [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
