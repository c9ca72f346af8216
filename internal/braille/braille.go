// Package braille rasterizes a wheel plan onto a terminal braille canvas,
// two by four dots per cell, and overlays body and sign labels as text.
// A Frame maps terminal cells back to chart pixels for pointer hit-testing.
package braille

import (
	"math"
	"strings"

	drawille "github.com/exrook/drawille-go"
	"github.com/golang/geo/r2"

	"github.com/papapumpkin/natal/internal/wheel"
)

// Dots per terminal cell.
const (
	DotsX = 2
	DotsY = 4
)

// Options control the rendering.
type Options struct {
	// Unicode keeps astrological symbols in labels; otherwise the ASCII
	// fallbacks are used.
	Unicode bool
}

// Label is text placed over the dot canvas.
type Label struct {
	ID    string
	Col   int
	Row   int
	Text  string
	Color string
}

// Frame is one rendered chart sized to a terminal region.
type Frame struct {
	Cols   int
	Rows   int
	Lines  []string
	Labels []Label

	// scale is dots per chart pixel; offX and offY center the wheel in dots.
	scale float64
	offX  float64
	offY  float64
}

// Render draws plan into a region of cols by rows cells.
func Render(plan wheel.Plan, cols, rows int, opts Options) *Frame {
	f := &Frame{Cols: max(cols, 1), Rows: max(rows, 1)}
	dotsW, dotsH := f.Cols*DotsX, f.Rows*DotsY
	side := math.Min(float64(dotsW), float64(dotsH))
	if plan.Size > 0 {
		f.scale = side / plan.Size
	}
	f.offX = (float64(dotsW) - side) / 2
	f.offY = (float64(dotsH) - side) / 2

	canvas := drawille.NewCanvas()
	set := func(x, y int) {
		if x >= 0 && y >= 0 && x < dotsW && y < dotsH {
			canvas.Set(x, y)
		}
	}

	for _, p := range plan.Primitives {
		switch p.Shape {
		case wheel.ShapeLine:
			x1, y1 := f.toDots(p.From)
			x2, y2 := f.toDots(p.To)
			if len(p.Stroke.Dash) > 0 {
				dottedLine(set, x1, y1, x2, y2)
			} else {
				line(set, x1, y1, x2, y2)
			}
		case wheel.ShapeCircle:
			if p.Fill != "" && p.Stroke.Width == 0 {
				// Aspect end marks are smaller than a dot.
				x, y := f.toDots(p.Center)
				set(x, y)
				continue
			}
			cx, cy := f.toDotsF(p.Center)
			circle(set, cx, cy, p.Radius*f.scale)
		case wheel.ShapeText:
			if !overlaid(p) {
				continue
			}
			f.place(p, opts)
		}
	}

	raw := canvas.Rows(0, 0, dotsW-1, dotsH-1)
	f.Lines = normalize(raw, f.Cols, f.Rows)
	return f
}

// overlaid reports whether a text primitive is shown on the terminal. Only
// body, axis and sign glyphs fit at braille resolution.
func overlaid(p wheel.Primitive) bool {
	return strings.HasPrefix(p.ID, "planet-") || strings.HasPrefix(p.ID, "sign-")
}

func (f *Frame) place(p wheel.Primitive, opts Options) {
	text := p.Label(!opts.Unicode)
	x, y := f.toDotsF(p.Center)
	col := int(x/DotsX) - len([]rune(text))/2
	row := int(y / DotsY)
	if row < 0 || row >= f.Rows {
		return
	}
	col = max(0, min(col, f.Cols-len([]rune(text))))
	f.Labels = append(f.Labels, Label{ID: p.ID, Col: col, Row: row, Text: text, Color: p.Fill})
}

func (f *Frame) toDotsF(p r2.Point) (float64, float64) {
	return p.X*f.scale + f.offX, p.Y*f.scale + f.offY
}

func (f *Frame) toDots(p r2.Point) (int, int) {
	x, y := f.toDotsF(p)
	return int(math.Round(x)), int(math.Round(y))
}

// ToChart maps the center of a terminal cell to chart canvas pixels.
func (f *Frame) ToChart(col, row int) r2.Point {
	if f.scale == 0 {
		return r2.Point{}
	}
	x := (float64(col*DotsX) + DotsX/2.0 - f.offX) / f.scale
	y := (float64(row*DotsY) + DotsY/2.0 - f.offY) / f.scale
	return r2.Point{X: x, Y: y}
}

// FromChart maps chart canvas pixels to the terminal cell containing them.
func (f *Frame) FromChart(p r2.Point) (col, row int) {
	x, y := f.toDotsF(p)
	return int(math.Floor(x / DotsX)), int(math.Floor(y / DotsY))
}

// Scale returns dots per chart pixel.
func (f *Frame) Scale() float64 {
	return f.scale
}

// String returns the frame with labels overlaid.
func (f *Frame) String() string {
	return strings.Join(f.Composite(), "\n")
}

// Composite returns the braille lines with every label written over them.
func (f *Frame) Composite() []string {
	grid := make([][]rune, len(f.Lines))
	for i, l := range f.Lines {
		grid[i] = []rune(l)
	}
	for _, lb := range f.Labels {
		row := grid[lb.Row]
		for i, r := range []rune(lb.Text) {
			if c := lb.Col + i; c >= 0 && c < len(row) {
				row[c] = r
			}
		}
	}
	out := make([]string, len(grid))
	for i, r := range grid {
		out[i] = string(r)
	}
	return out
}

// normalize pads or trims canvas rows to exactly rows lines of cols runes.
func normalize(raw []string, cols, rows int) []string {
	out := make([]string, rows)
	for i := range out {
		var r []rune
		if i < len(raw) {
			r = []rune(raw[i])
		}
		if len(r) > cols {
			r = r[:cols]
		}
		for len(r) < cols {
			r = append(r, ' ')
		}
		out[i] = string(r)
	}
	return out
}

// line plots a Bresenham line.
func line(set func(x, y int), x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		set(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// dottedLine plots every other dot of a line.
func dottedLine(set func(x, y int), x1, y1, x2, y2 int) {
	n := 0
	line(func(x, y int) {
		if n%2 == 0 {
			set(x, y)
		}
		n++
	}, x1, y1, x2, y2)
}

func circle(set func(x, y int), cx, cy, r float64) {
	if r <= 0 {
		return
	}
	step := 1 / math.Max(r, 1)
	for a := 0.0; a < 2*math.Pi; a += step {
		set(int(math.Round(cx+math.Cos(a)*r)), int(math.Round(cy+math.Sin(a)*r)))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
