package hittest

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/natal/internal/aspect"
	"github.com/papapumpkin/natal/internal/houses"
	"github.com/papapumpkin/natal/internal/zodiac"
)

// Lookup supplies interpretation text. Every method reports a miss rather
// than failing; *interp.Dictionary satisfies it.
type Lookup interface {
	Planet(name string) (string, bool)
	House(ordinal string) (string, bool)
	PlanetInSign(name, sign string) (string, bool)
	AspectGeneral(aspectType string) (string, bool)
	AspectPair(aspectType, a, b string) (string, bool)
}

// Description is tooltip content: a title line followed by detail lines.
type Description struct {
	Title string
	Lines []string
}

// String joins the title and lines with newlines.
func (d Description) String() string {
	if d.Title == "" {
		return ""
	}
	return strings.Join(append([]string{d.Title}, d.Lines...), "\n")
}

// Empty reports whether there is nothing to show.
func (d Description) Empty() bool {
	return d.Title == ""
}

// Describe builds the tooltip for a hit. A miss yields an empty
// Description. lookup may be nil.
func Describe(hit Hit, lookup Lookup) Description {
	switch hit.Kind {
	case Planet:
		return describePlanet(hit.Position, hit.Aspects, lookup)
	case Aspect:
		return describeAspect(hit, lookup)
	default:
		return Description{}
	}
}

func describePlanet(p zodiac.Position, aspects []aspect.Aspect, lookup Lookup) Description {
	ordinal := houses.Ordinal(p.House)
	d := Description{
		Title: fmt.Sprintf("%s in %s", p.Name, p.Sign),
		Lines: []string{
			"Degree: " + p.DMS(),
			"House: " + ordinal,
		},
	}
	if p.Retrograde {
		d.Lines = append(d.Lines, "Retrograde")
	}
	if len(aspects) > 0 {
		d.Lines = append(d.Lines, "Aspects: "+aspectList(p.Name, aspects))
	}
	if lookup == nil {
		return d
	}
	if text, ok := lookup.Planet(p.Name); ok {
		d.Lines = append(d.Lines, "", text)
	}
	if text, ok := lookup.House(ordinal); ok {
		d.Lines = append(d.Lines, "", fmt.Sprintf("%s House: %s", ordinal, text))
	}
	if text, ok := lookup.PlanetInSign(p.Name, p.Sign.String()); ok {
		d.Lines = append(d.Lines, "", fmt.Sprintf("In %s: %s", p.Sign, text))
	}
	return d
}

// aspectList names each aspect from name's side, e.g. "Trine Moon, Square Mars".
func aspectList(name string, aspects []aspect.Aspect) string {
	parts := make([]string, 0, len(aspects))
	for _, a := range aspects {
		other := a.B
		if a.B == name {
			other = a.A
		}
		parts = append(parts, a.Type+" "+other)
	}
	return strings.Join(parts, ", ")
}

func describeAspect(hit Hit, lookup Lookup) Description {
	a := hit.Aspect
	d := Description{
		Title: fmt.Sprintf("%s %s %s", a.A, a.Type, a.B),
		Lines: []string{fmt.Sprintf("Orb: %.1f°", a.Orb)},
	}
	if lookup == nil {
		return d
	}
	if text, ok := lookup.AspectPair(a.Type, a.A, a.B); ok {
		d.Lines = append(d.Lines, "", text)
	} else if text, ok := lookup.AspectGeneral(a.Type); ok {
		d.Lines = append(d.Lines, "", text)
	}
	return d
}
