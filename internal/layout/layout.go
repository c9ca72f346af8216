package layout

import (
	"github.com/golang/geo/r2"

	"github.com/papapumpkin/natal/internal/zodiac"
)

// GlyphKind distinguishes ring bodies from axis points.
type GlyphKind string

// Glyph kinds.
const (
	GlyphBody GlyphKind = "body"
	GlyphAxis GlyphKind = "axis"
)

// Options controls which bodies are laid out.
type Options struct {
	// ShowExtended includes Chiron, Lilith, Node, Fortune and Vertex.
	ShowExtended bool
}

// DefaultOptions lays out every catalogued body.
func DefaultOptions() Options {
	return Options{ShowExtended: true}
}

// Glyph is a placed, hit-testable chart symbol. Point is relative to the
// wheel center.
type Glyph struct {
	Name         string    `json:"name" toml:"name" yaml:"name"`
	Kind         GlyphKind `json:"kind" toml:"kind" yaml:"kind"`
	Index        int       `json:"index" toml:"index" yaml:"index"`
	VisualDegree float64   `json:"visualDegree" toml:"visual_degree" yaml:"visualDegree"`
	ScreenAngle  float64   `json:"screenAngle" toml:"screen_angle" yaml:"screenAngle"`
	Radius       float64   `json:"radius" toml:"radius" yaml:"radius"`
	Point        r2.Point  `json:"point" toml:"point" yaml:"point"`
}

// Layout is the result of one layout pass.
type Layout struct {
	Ascendant float64           `json:"ascendant" toml:"ascendant" yaml:"ascendant"`
	Positions []zodiac.Position `json:"-" toml:"-" yaml:"-"`
	Glyphs    []Glyph           `json:"glyphs" toml:"glyphs" yaml:"glyphs"`
}

// Shows reports whether the body would be drawn on the planet ring under opts.
func (o Options) Shows(p zodiac.Position) bool {
	if !zodiac.IsRingBody(p.Name) {
		return false
	}
	return o.ShowExtended || p.Kind() != zodiac.KindExtended
}

// Compute declusters the ring bodies and places every glyph. Positions must
// already carry houses; they are copied, never modified.
func Compute(positions []zodiac.Position, geom Geometry, opts Options) Layout {
	var asc float64
	if p, ok := zodiac.Find(positions, zodiac.ASC); ok {
		asc = p.AbsoluteDegree
	}

	placed := Decluster(positions, opts.Shows)
	l := Layout{Ascendant: asc, Positions: placed}

	for i, p := range placed {
		var kind GlyphKind
		var radius float64
		switch {
		case opts.Shows(p):
			kind, radius = GlyphBody, geom.Radii.PlanetRing
		case zodiac.IsAxis(p.Name):
			kind, radius = GlyphAxis, geom.AxisRadius()
		default:
			continue
		}
		angle := ScreenAngle(p.VisualDegree, asc)
		l.Glyphs = append(l.Glyphs, Glyph{
			Name:         p.Name,
			Kind:         kind,
			Index:        i,
			VisualDegree: p.VisualDegree,
			ScreenAngle:  angle,
			Radius:       radius,
			Point:        geom.Point(angle, radius),
		})
	}
	return l
}

// Glyph returns the placed glyph for the named body.
func (l Layout) Glyph(name string) (Glyph, bool) {
	for _, g := range l.Glyphs {
		if g.Name == name {
			return g, true
		}
	}
	return Glyph{}, false
}

// Position returns the laid-out position for the named body.
func (l Layout) Position(name string) (zodiac.Position, bool) {
	return zodiac.Find(l.Positions, name)
}

// PointAt returns the center-relative point of a body's visual degree at an
// arbitrary radius, used for aspect endpoints on the hub.
func (l Layout) PointAt(geom Geometry, name string, radius float64) (r2.Point, bool) {
	p, ok := l.Position(name)
	if !ok {
		return r2.Point{}, false
	}
	return geom.Point(ScreenAngle(p.VisualDegree, l.Ascendant), radius), true
}
