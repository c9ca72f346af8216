// Package raster executes a wheel plan immediately onto an RGBA image and
// encodes it as PNG. Drawing happens at 4x resolution and is downsampled,
// which smooths the thin rings and aspect lines.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/papapumpkin/natal/internal/wheel"
)

// Supersample is the oversampling factor used before downscaling.
const Supersample = 4

// renderContext holds the canvas and font state for one render.
type renderContext struct {
	img   *image.RGBA
	scale float64
	font  *opentype.Font
	faces map[float64]font.Face
}

func newRenderContext(img *image.RGBA, scale float64) (*renderContext, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded font: %w", err)
	}
	return &renderContext{img: img, scale: scale, font: fnt, faces: map[float64]font.Face{}}, nil
}

func (ctx *renderContext) face(size float64) (font.Face, error) {
	if f, ok := ctx.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(ctx.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %.1fpt face: %w", size, err)
	}
	ctx.faces[size] = f
	return f, nil
}

// Render draws plan and returns the downsampled image.
func Render(plan wheel.Plan) (*image.RGBA, error) {
	size := int(math.Ceil(plan.Size))
	if size <= 0 {
		return nil, fmt.Errorf("raster: invalid plan size %v", plan.Size)
	}
	large := image.NewRGBA(image.Rect(0, 0, size*Supersample, size*Supersample))
	draw.Draw(large, large.Bounds(), image.NewUniform(ParseColor(plan.Background)), image.Point{}, draw.Src)

	ctx, err := newRenderContext(large, Supersample)
	if err != nil {
		return nil, err
	}
	for _, p := range plan.Primitives {
		if err := ctx.draw(p); err != nil {
			return nil, err
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(out, out.Bounds(), large, large.Bounds(), draw.Over, nil)
	return out, nil
}

// Encode renders plan and writes it to w as PNG.
func Encode(w io.Writer, plan wheel.Plan) error {
	img, err := Render(plan)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("raster: encoding png: %w", err)
	}
	return nil
}

func (ctx *renderContext) draw(p wheel.Primitive) error {
	s := ctx.scale
	switch p.Shape {
	case wheel.ShapeCircle:
		cx, cy := p.Center.X*s, p.Center.Y*s
		if p.Fill != "" {
			fillCircle(ctx, cx, cy, p.Radius*s, ParseColor(p.Fill), opacity(p.Opacity))
		}
		if p.Stroke.Width > 0 {
			strokeCircle(ctx, cx, cy, p.Radius*s, p.Stroke.Width*s, ParseColor(p.Stroke.Color), opacity(p.Opacity))
		}
	case wheel.ShapeLine:
		dash := make([]float64, len(p.Stroke.Dash))
		for i, d := range p.Stroke.Dash {
			dash[i] = d * s
		}
		drawLine(ctx, p.From.X*s, p.From.Y*s, p.To.X*s, p.To.Y*s, p.Stroke.Width*s, dash, ParseColor(p.Stroke.Color))
	case wheel.ShapeWedge:
		fillWedge(ctx, p.Center.X*s, p.Center.Y*s, p.Inner*s, p.Radius*s, p.Start, p.Sweep, ParseColor(p.Fill), opacity(p.Opacity))
	case wheel.ShapeText:
		face, err := ctx.face(p.FontSize * s)
		if err != nil {
			return err
		}
		text := p.Text
		if !covers(face, text) {
			text = p.Fallback
		}
		drawTextCentered(ctx, face, int(p.Center.X*s), int(p.Center.Y*s), text, ParseColor(p.Fill))
	}
	return nil
}

// opacity maps the zero value to fully opaque.
func opacity(a float64) float64 {
	if a <= 0 || a > 1 {
		return 1
	}
	return a
}

// covers reports whether face has a glyph for every rune of text.
func covers(face font.Face, text string) bool {
	for _, r := range text {
		if _, ok := face.GlyphAdvance(r); !ok {
			return false
		}
	}
	return true
}

// blend paints c over the pixel at (x, y) with the given alpha.
func blend(img *image.RGBA, x, y int, c color.RGBA, alpha float64) {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return
	}
	if alpha >= 1 {
		img.SetRGBA(x, y, c)
		return
	}
	dst := img.RGBAAt(x, y)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*(1-alpha) + float64(b)*alpha))
	}
	img.SetRGBA(x, y, color.RGBA{mix(dst.R, c.R), mix(dst.G, c.G), mix(dst.B, c.B), 255})
}

func fillCircle(ctx *renderContext, cx, cy, r float64, c color.RGBA, alpha float64) {
	for dy := -r; dy <= r; dy++ {
		xExtent := math.Sqrt(math.Max(0, r*r-dy*dy))
		for dx := -xExtent; dx <= xExtent; dx++ {
			blend(ctx.img, int(cx+dx), int(cy+dy), c, alpha)
		}
	}
}

func strokeCircle(ctx *renderContext, cx, cy, r, thickness float64, c color.RGBA, alpha float64) {
	// One sample per pixel of circumference at the outer edge.
	step := 1 / math.Max(r+thickness, 1)
	for angle := 0.0; angle < 2*math.Pi; angle += step {
		nx, ny := math.Cos(angle), math.Sin(angle)
		for t := -thickness / 2; t <= thickness/2; t += 0.5 {
			blend(ctx.img, int(cx+nx*(r+t)), int(cy+ny*(r+t)), c, alpha)
		}
	}
}

// drawLine draws a thick line. dash alternates on and off lengths.
func drawLine(ctx *renderContext, x1, y1, x2, y2, thickness float64, dash []float64, c color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)
	halfThick := math.Max(thickness, 1) / 2

	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				blend(ctx.img, int(x1+tx), int(y1+ty), c, 1)
			}
		}
		return
	}

	perpX := -dy / dist
	perpY := dx / dist
	steps := math.Ceil(dist)
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		if !dashOn(dash, t*dist) {
			continue
		}
		px := x1 + dx*t
		py := y1 + dy*t
		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			blend(ctx.img, int(px+perpX*offset), int(py+perpY*offset), c, 1)
		}
	}
}

// dashOn reports whether distance d along a dashed line falls on a dash.
func dashOn(dash []float64, d float64) bool {
	var period float64
	for _, v := range dash {
		period += v
	}
	if period <= 0 {
		return true
	}
	pos := math.Mod(d, period)
	for i, v := range dash {
		if pos < v {
			return i%2 == 0
		}
		pos -= v
	}
	return true
}

// fillWedge fills the ring sector between inner and outer radius spanning
// screen angles start to start+sweep.
func fillWedge(ctx *renderContext, cx, cy, inner, outer, start, sweep float64, c color.RGBA, alpha float64) {
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for a := start; a <= start+sweep; a++ {
		rad := a * math.Pi / 180
		for _, r := range []float64{inner, outer} {
			x, y := cx+math.Cos(rad)*r, cy+math.Sin(rad)*r
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	for y := int(math.Floor(minY)) - 1; y <= int(math.Ceil(maxY))+1; y++ {
		for x := int(math.Floor(minX)) - 1; x <= int(math.Ceil(maxX))+1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			r := math.Hypot(dx, dy)
			if r < inner || r > outer {
				continue
			}
			angle := math.Atan2(dy, dx) * 180 / math.Pi
			if inSweep(angle, start, sweep) {
				blend(ctx.img, x, y, c, alpha)
			}
		}
	}
}

// inSweep reports whether angle lies within [start, start+sweep], all in
// degrees, with wraparound.
func inSweep(angle, start, sweep float64) bool {
	rel := math.Mod(angle-start, 360)
	if rel < 0 {
		rel += 360
	}
	return rel <= sweep
}

func drawTextCentered(ctx *renderContext, face font.Face, x, y int, text string, c color.RGBA) {
	if text == "" {
		return
	}
	width := font.MeasureString(face, text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x - width/2), Y: fixed.I(y + int(float64(ascent)*0.35))},
	}
	d.DrawString(text)
}

// ParseColor parses #rgb or #rrggbb. Anything else yields black.
func ParseColor(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{A: 255}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
