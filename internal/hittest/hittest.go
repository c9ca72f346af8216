// Package hittest resolves a pointer position on the rendered wheel to the
// chart element under it and builds the tooltip text for that element.
// Resolution reads a snapshot and keeps no state between calls.
package hittest

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/papapumpkin/natal/internal/aspect"
	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/layout"
	"github.com/papapumpkin/natal/internal/zodiac"
)

// Input is the kind of pointing device.
type Input int

// Pointing devices.
const (
	Mouse Input = iota
	Touch
)

// String returns "mouse" or "touch".
func (i Input) String() string {
	if i == Touch {
		return "touch"
	}
	return "mouse"
}

// Kind classifies a hit.
type Kind int

// Hit kinds.
const (
	None Kind = iota
	Planet
	Aspect
)

// String returns a lowercase label for the kind.
func (k Kind) String() string {
	switch k {
	case Planet:
		return "planet"
	case Aspect:
		return "aspect"
	default:
		return "none"
	}
}

// Thresholds are hit radii in pixels at scale 1.
type Thresholds struct {
	Planet      float64 `mapstructure:"planet_threshold"`
	TouchPlanet float64 `mapstructure:"touch_planet_threshold"`
	Aspect      float64 `mapstructure:"aspect_threshold"`
	TouchAspect float64 `mapstructure:"touch_aspect_threshold"`
}

// DefaultThresholds returns 15/25px for glyphs and 6/12px for aspect lines.
func DefaultThresholds() Thresholds {
	return Thresholds{Planet: 15, TouchPlanet: 25, Aspect: 6, TouchAspect: 12}
}

// planet returns the glyph threshold for input, scaled.
func (t Thresholds) planet(input Input, scale float64) float64 {
	if input == Touch {
		return t.TouchPlanet * scale
	}
	return t.Planet * scale
}

func (t Thresholds) aspect(input Input, scale float64) float64 {
	if input == Touch {
		return t.TouchAspect * scale
	}
	return t.Aspect * scale
}

// Hit is the result of one resolution. The zero value is a miss. Aspects
// lists every aspect the hit body makes, for Planet hits only.
type Hit struct {
	Kind     Kind
	Position zodiac.Position
	Aspect   aspect.Aspect
	Aspects  []aspect.Aspect
	Distance float64
}

// Resolver maps pointer coordinates to chart elements.
type Resolver struct {
	Thresholds Thresholds
}

// NewResolver returns a resolver using t, falling back to the defaults for
// any threshold that is not positive.
func NewResolver(t Thresholds) *Resolver {
	def := DefaultThresholds()
	if t.Planet <= 0 {
		t.Planet = def.Planet
	}
	if t.TouchPlanet <= 0 {
		t.TouchPlanet = def.TouchPlanet
	}
	if t.Aspect <= 0 {
		t.Aspect = def.Aspect
	}
	if t.TouchAspect <= 0 {
		t.TouchAspect = def.TouchAspect
	}
	return &Resolver{Thresholds: t}
}

// Resolve returns what lies under pointer, given in canvas pixels with the
// origin at the top-left corner. Glyphs take precedence over aspect lines;
// within each class the nearest element strictly inside the threshold wins.
func (r *Resolver) Resolve(snap *chart.Snapshot, pointer r2.Point, input Input) Hit {
	if snap == nil {
		return Hit{}
	}
	geom := snap.Geometry
	p := geom.FromCanvas(pointer)

	if hit, ok := r.resolveGlyph(snap, p, input); ok {
		return hit
	}
	if !snap.Options.ShowAspects {
		return Hit{}
	}
	if hit, ok := r.resolveAspect(snap, p, input); ok {
		return hit
	}
	return Hit{}
}

func (r *Resolver) resolveGlyph(snap *chart.Snapshot, p r2.Point, input Input) (Hit, bool) {
	limit := r.Thresholds.planet(input, snap.Geometry.Scale)
	best := Hit{Distance: math.Inf(1)}
	for _, g := range snap.Layout.Glyphs {
		d := p.Sub(g.Point).Norm()
		if d >= limit || d >= best.Distance {
			continue
		}
		best = Hit{Kind: Planet, Position: snap.Layout.Positions[g.Index], Distance: d}
	}
	if best.Kind != Planet {
		return best, false
	}
	best.Aspects = snap.AspectsOf(best.Position.Name)
	return best, true
}

func (r *Resolver) resolveAspect(snap *chart.Snapshot, p r2.Point, input Input) (Hit, bool) {
	geom := snap.Geometry
	limit := r.Thresholds.aspect(input, geom.Scale)
	best := Hit{Distance: math.Inf(1)}
	for _, a := range snap.Aspects {
		from, to, ok := Endpoints(snap.Layout, geom, a)
		if !ok {
			continue
		}
		d := SegmentDistance(p, from, to)
		if d >= limit || d >= best.Distance {
			continue
		}
		best = Hit{Kind: Aspect, Aspect: a, Distance: d}
	}
	return best, best.Kind == Aspect
}

// Endpoints returns the center-relative ends of an aspect line: each body's
// visual degree on the aspect hub ring.
func Endpoints(l layout.Layout, geom layout.Geometry, a aspect.Aspect) (r2.Point, r2.Point, bool) {
	from, ok := l.PointAt(geom, a.A, geom.Radii.AspectHub)
	if !ok {
		return r2.Point{}, r2.Point{}, false
	}
	to, ok := l.PointAt(geom, a.B, geom.Radii.AspectHub)
	if !ok {
		return r2.Point{}, r2.Point{}, false
	}
	return from, to, true
}

// SegmentDistance is the distance from p to the closest point of segment ab.
func SegmentDistance(p, a, b r2.Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Sub(a).Norm()
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(ab.Mul(t))).Norm()
}
