package wheel

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"

	"github.com/papapumpkin/natal/internal/aspect"
	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/hittest"
	"github.com/papapumpkin/natal/internal/layout"
	"github.com/papapumpkin/natal/internal/zodiac"
)

// Text sizes and offsets at scale 1.
const (
	signGlyphSize   = 24
	signGlyphOffset = 25
	houseNumberSize = 14
	axisLabelSize   = 12
	bodyGlyphSize   = 28
	labelSize       = 12
	labelStep       = 12
	hubMarkRadius   = 3
)

type builder struct {
	snap  *chart.Snapshot
	geom  layout.Geometry
	style Style
	prims []Primitive
}

// Build produces the drawing plan for snap. The plan is deterministic: the
// same snapshot and style always yield the same primitives in the same order.
func Build(snap *chart.Snapshot, style Style) Plan {
	b := &builder{snap: snap, geom: snap.Geometry, style: style}
	b.zodiac()
	if snap.Options.ShowDegreeMarkers {
		b.degrees()
	}
	b.houses()
	if snap.Options.ShowAspects {
		b.aspects()
	}
	b.bodies()
	b.axes()
	return Plan{Size: b.geom.Size, Background: style.Background, Primitives: b.prims}
}

func (b *builder) add(p Primitive) {
	b.prims = append(b.prims, p)
}

// at returns the canvas point of an absolute longitude at radius r.
func (b *builder) at(abs, r float64) r2.Point {
	return b.geom.ToCanvas(b.geom.Point(layout.ScreenAngle(abs, b.snap.Ascendant()), r))
}

func (b *builder) scaled(v float64) float64 {
	return v * b.geom.Scale
}

func (b *builder) zodiac() {
	r := b.geom.Radii
	asc := b.snap.Ascendant()
	center := b.geom.Center()

	for _, sign := range zodiac.Signs() {
		start := sign.Start()
		b.add(Primitive{
			Shape:   ShapeWedge,
			Layer:   LayerZodiac,
			ID:      "sector-" + sign.String(),
			Class:   "sector " + strings.ToLower(sign.Element().String()),
			Center:  center,
			Radius:  r.OuterZodiac,
			Inner:   r.InnerZodiac,
			Start:   layout.ScreenAngle(start+zodiac.DegreesPerSign, asc),
			Sweep:   zodiac.DegreesPerSign,
			Fill:    sign.Element().Color(),
			Opacity: b.style.SectorAlpha,
		})
	}
	for _, radius := range []float64{r.OuterZodiac, r.InnerZodiac} {
		b.add(Primitive{
			Shape:  ShapeCircle,
			Layer:  LayerZodiac,
			Class:  "ring",
			Center: center,
			Radius: radius,
			Stroke: Stroke{Color: b.style.Ring, Width: b.scaled(1)},
		})
	}
	for _, sign := range zodiac.Signs() {
		start := sign.Start()
		b.add(Primitive{
			Shape:  ShapeLine,
			Layer:  LayerZodiac,
			Class:  "sign-boundary",
			From:   b.at(start, r.InnerZodiac),
			To:     b.at(start, r.OuterZodiac),
			Stroke: Stroke{Color: b.style.SignBoundary, Width: b.scaled(1.5)},
		})
		b.add(Primitive{
			Shape:    ShapeText,
			Layer:    LayerZodiac,
			ID:       "sign-" + sign.String(),
			Class:    "sign",
			Center:   b.at(start+zodiac.DegreesPerSign/2, r.InnerZodiac+b.scaled(signGlyphOffset)),
			Text:     sign.Glyph(),
			Fallback: sign.Abbrev(),
			FontSize: b.scaled(signGlyphSize),
			Fill:     b.style.SignGlyph,
		})
	}
}

// degrees draws one tick per degree between sign boundaries: long every
// ten degrees, medium every five.
func (b *builder) degrees() {
	inner := b.geom.Radii.InnerZodiac
	for deg := 0; deg < 360; deg++ {
		if deg%zodiac.DegreesPerSign == 0 {
			continue
		}
		length, color, width := 4.0, b.style.TickMinor, 0.5
		switch {
		case deg%10 == 0:
			length, color, width = 12, b.style.TickMajor, 1
		case deg%5 == 0:
			length = 8
		}
		abs := float64(deg)
		b.add(Primitive{
			Shape:  ShapeLine,
			Layer:  LayerDegrees,
			Class:  "tick",
			From:   b.at(abs, inner),
			To:     b.at(abs, inner+b.scaled(length)),
			Stroke: Stroke{Color: color, Width: b.scaled(width)},
		})
	}
}

func (b *builder) houses() {
	r := b.geom.Radii
	for _, cusp := range b.snap.Cusps {
		axis := b.isAxisCusp(cusp.AbsoluteDegree)
		spoke, rim, rimWidth := b.style.HouseSpoke, b.style.HouseRim, 2.5
		if axis {
			spoke, rim, rimWidth = b.style.AxisCusp, b.style.AxisRim, 4
		}
		b.add(Primitive{
			Shape:  ShapeLine,
			Layer:  LayerHouses,
			ID:     fmt.Sprintf("cusp-%d", cusp.House),
			Class:  "cusp",
			From:   b.at(cusp.AbsoluteDegree, r.HouseLineInner),
			To:     b.at(cusp.AbsoluteDegree, r.InnerZodiac),
			Stroke: Stroke{Color: spoke, Width: b.scaled(1)},
		})
		b.add(Primitive{
			Shape:  ShapeLine,
			Layer:  LayerHouses,
			Class:  "cusp-rim",
			From:   b.at(cusp.AbsoluteDegree, r.InnerZodiac),
			To:     b.at(cusp.AbsoluteDegree, r.OuterZodiac),
			Stroke: Stroke{Color: rim, Width: b.scaled(rimWidth)},
		})
	}
	for _, name := range []string{zodiac.ASC, zodiac.MC, zodiac.DSC, zodiac.IC} {
		p, ok := b.snap.Position(name)
		if !ok {
			continue
		}
		b.add(Primitive{
			Shape:  ShapeLine,
			Layer:  LayerHouses,
			ID:     "axis-line-" + name,
			Class:  "axis-line",
			From:   b.at(p.AbsoluteDegree, r.HouseLineInner),
			To:     b.at(p.AbsoluteDegree, r.InnerZodiac),
			Stroke: Stroke{Color: b.style.AxisLine, Width: b.scaled(2.5)},
		})
	}
	for _, cusp := range b.snap.Cusps {
		b.add(Primitive{
			Shape:    ShapeText,
			Layer:    LayerHouses,
			ID:       fmt.Sprintf("house-%d", cusp.House),
			Class:    "house-number",
			Center:   b.at(cusp.AbsoluteDegree+zodiac.DegreesPerSign/2, r.HouseNumber),
			Text:     fmt.Sprint(cusp.House),
			FontSize: b.scaled(houseNumberSize),
			Fill:     b.style.HouseNumber,
		})
	}
}

func (b *builder) isAxisCusp(deg float64) bool {
	for _, name := range []string{zodiac.ASC, zodiac.MC, zodiac.DSC, zodiac.IC} {
		if p, ok := b.snap.Position(name); ok && aspect.Separation(p.AbsoluteDegree, deg) < 1e-9 {
			return true
		}
	}
	return false
}

func (b *builder) aspects() {
	center := b.geom.Center()
	b.add(Primitive{
		Shape:   ShapeCircle,
		Layer:   LayerAspects,
		Class:   "aspect-hub",
		Center:  center,
		Radius:  b.geom.Radii.AspectHub,
		Opacity: 0.3,
		Stroke:  Stroke{Color: b.style.AspectHub, Width: b.scaled(1)},
	})
	for _, a := range b.snap.VisibleAspects() {
		from, to, ok := hittest.Endpoints(b.snap.Layout, b.geom, a)
		if !ok {
			continue
		}
		from, to = b.geom.ToCanvas(from), b.geom.ToCanvas(to)
		class := "aspect " + strings.ToLower(a.Type)
		b.add(Primitive{
			Shape:  ShapeLine,
			Layer:  LayerAspects,
			ID:     fmt.Sprintf("aspect-%s-%s", a.A, a.B),
			Class:  class,
			From:   from,
			To:     to,
			Stroke: Stroke{Color: a.Color, Width: b.scaled(a.Weight), Dash: b.dash(a.Style)},
		})
		for _, end := range []r2.Point{from, to} {
			b.add(Primitive{
				Shape:  ShapeCircle,
				Layer:  LayerAspects,
				Class:  "aspect-end",
				Center: end,
				Radius: b.scaled(hubMarkRadius),
				Fill:   a.Color,
			})
		}
	}
}

func (b *builder) dash(s aspect.Style) []float64 {
	switch s {
	case aspect.Dotted:
		return []float64{b.scaled(3), b.scaled(3)}
	case aspect.Dashed:
		return []float64{b.scaled(6), b.scaled(4)}
	default:
		return nil
	}
}

func (b *builder) bodies() {
	r := b.geom.Radii
	notchEnd := r.InnerZodiac + (r.PlanetRing-r.InnerZodiac)/2
	for _, g := range b.snap.Layout.Glyphs {
		if g.Kind != layout.GlyphBody {
			continue
		}
		p := b.snap.Layout.Positions[g.Index]
		at := func(radius float64) r2.Point {
			return b.geom.ToCanvas(b.geom.Point(g.ScreenAngle, radius))
		}

		fill := b.style.Body
		if p.Retrograde {
			fill = b.style.Retrograde
		}
		b.add(Primitive{
			Shape:  ShapeLine,
			Layer:  LayerBodies,
			Class:  "notch",
			From:   at(r.InnerZodiac),
			To:     at(notchEnd),
			Stroke: Stroke{Color: b.style.Notch, Width: b.scaled(2)},
		})
		b.add(Primitive{
			Shape:    ShapeText,
			Layer:    LayerBodies,
			ID:       "planet-" + p.Name,
			Class:    "planet " + p.Kind().String(),
			Center:   at(g.Radius),
			Text:     zodiac.Glyph(p.Name),
			Fallback: zodiac.Abbrev(p.Name),
			FontSize: b.scaled(bodyGlyphSize),
			Fill:     fill,
		})

		step := b.scaled(labelStep)
		b.add(Primitive{
			Shape:    ShapeText,
			Layer:    LayerBodies,
			ID:       "label-" + p.Name,
			Class:    "label degree",
			Center:   at(r.Label),
			Text:     fmt.Sprintf("%d°", p.Degree),
			Fallback: fmt.Sprint(p.Degree),
			FontSize: b.scaled(labelSize),
			Fill:     b.style.Label,
		})
		b.add(Primitive{
			Shape:    ShapeText,
			Layer:    LayerBodies,
			Class:    "label sign",
			Center:   at(r.Label - step),
			Text:     p.Sign.Glyph(),
			Fallback: p.Sign.Abbrev(),
			FontSize: b.scaled(labelSize),
			Fill:     p.Sign.Element().Color(),
		})
		b.add(Primitive{
			Shape:    ShapeText,
			Layer:    LayerBodies,
			Class:    "label minute",
			Center:   at(r.Label - 2*step),
			Text:     fmt.Sprintf("%02d", p.Minute),
			FontSize: b.scaled(labelSize - 1),
			Fill:     b.style.Minute,
		})
		if p.Retrograde {
			b.add(Primitive{
				Shape:    ShapeText,
				Layer:    LayerBodies,
				ID:       "retrograde-" + p.Name,
				Class:    "label retrograde",
				Center:   at(r.Label - 3*step),
				Text:     "Rx",
				FontSize: b.scaled(labelSize - 2),
				Fill:     b.style.Retrograde,
			})
		}
	}
}

func (b *builder) axes() {
	for _, g := range b.snap.Layout.Glyphs {
		if g.Kind != layout.GlyphAxis {
			continue
		}
		b.add(Primitive{
			Shape:    ShapeText,
			Layer:    LayerAxes,
			ID:       "planet-" + g.Name,
			Class:    "axis",
			Center:   b.geom.ToCanvas(g.Point),
			Text:     zodiac.Glyph(g.Name),
			FontSize: b.scaled(axisLabelSize),
			Fill:     b.style.Label,
		})
	}
}
