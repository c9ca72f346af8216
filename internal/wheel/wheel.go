// Package wheel turns a chart snapshot into a backend-neutral drawing plan:
// an ordered list of circles, lines, text and ring sectors in canvas pixels.
// The raster, scene and braille renderers all execute the same plan.
package wheel

import "github.com/golang/geo/r2"

// Layer groups primitives that are drawn together. Layers are listed in
// paint order.
type Layer string

// Drawing layers.
const (
	LayerZodiac  Layer = "zodiac"
	LayerDegrees Layer = "degrees"
	LayerHouses  Layer = "houses"
	LayerAspects Layer = "aspects"
	LayerBodies  Layer = "bodies"
	LayerAxes    Layer = "axes"
)

// Layers returns every layer in paint order.
func Layers() []Layer {
	return []Layer{LayerZodiac, LayerDegrees, LayerHouses, LayerAspects, LayerBodies, LayerAxes}
}

// Shape is the kind of a primitive.
type Shape int

// Primitive shapes.
const (
	ShapeCircle Shape = iota
	ShapeLine
	ShapeText
	ShapeWedge
)

// String returns the lowercase shape name.
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeLine:
		return "line"
	case ShapeText:
		return "text"
	case ShapeWedge:
		return "wedge"
	default:
		return "unknown"
	}
}

// Stroke describes an outline. A zero Width means no outline. Dash holds
// alternating dash and gap lengths; nil is a solid line.
type Stroke struct {
	Color string
	Width float64
	Dash  []float64
}

// Primitive is one drawing instruction. All coordinates are canvas pixels.
//
//   - Circle: Center, Radius.
//   - Line: From, To.
//   - Text: Center is the middle of the text; Text may hold astrological
//     symbols, Fallback is its ASCII form.
//   - Wedge: the ring sector between Inner and Radius spanning screen angles
//     Start to Start+Sweep, in degrees.
type Primitive struct {
	Shape    Shape
	Layer    Layer
	ID       string
	Class    string
	Center   r2.Point
	Radius   float64
	Inner    float64
	From     r2.Point
	To       r2.Point
	Start    float64
	Sweep    float64
	Text     string
	Fallback string
	FontSize float64
	Fill     string
	Opacity  float64
	Stroke   Stroke
}

// Label returns Text, or Fallback when ascii is set and a fallback exists.
func (p Primitive) Label(ascii bool) string {
	if ascii && p.Fallback != "" {
		return p.Fallback
	}
	return p.Text
}

// Plan is a complete drawing of one chart.
type Plan struct {
	Size       float64
	Background string
	Primitives []Primitive
}

// Layer returns the primitives of one layer, in paint order.
func (p Plan) Layer(l Layer) []Primitive {
	var out []Primitive
	for _, prim := range p.Primitives {
		if prim.Layer == l {
			out = append(out, prim)
		}
	}
	return out
}

// Find returns the first primitive with the given id.
func (p Plan) Find(id string) (Primitive, bool) {
	for _, prim := range p.Primitives {
		if prim.ID == id {
			return prim, true
		}
	}
	return Primitive{}, false
}

// Style holds the colors used by Build. Colors are #rrggbb strings.
type Style struct {
	Background   string
	Ring         string
	SignBoundary string
	SignGlyph    string
	SectorAlpha  float64
	TickMinor    string
	TickMajor    string
	HouseSpoke   string
	AxisCusp     string
	HouseRim     string
	AxisRim      string
	HouseNumber  string
	AxisLine     string
	AspectHub    string
	Notch        string
	Body         string
	Retrograde   string
	Label        string
	Minute       string
}

// DefaultStyle is the light theme.
func DefaultStyle() Style {
	return Style{
		Background:   "#FFFFFF",
		Ring:         "#B4B4B4",
		SignBoundary: "#000000",
		SignGlyph:    "#8A2BE2",
		SectorAlpha:  0.35,
		TickMinor:    "#C8C8C8",
		TickMajor:    "#646464",
		HouseSpoke:   "#DCDCDC",
		AxisCusp:     "#969696",
		HouseRim:     "#787878",
		AxisRim:      "#505050",
		HouseNumber:  "#C8C8C8",
		AxisLine:     "#000000",
		AspectHub:    "#C8C8C8",
		Notch:        "#646464",
		Body:         "#000000",
		Retrograde:   "#FF0000",
		Label:        "#000000",
		Minute:       "#646464",
	}
}
