// Package scene builds a retained element tree from a wheel plan, one group
// per layer, and serializes it to SVG. Nodes keep the plan's ids so external
// tooling can address individual planets and aspect lines.
package scene

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/papapumpkin/natal/internal/wheel"
)

// Node is one element in the tree.
type Node struct {
	ID        string
	Class     string
	Primitive wheel.Primitive
}

// Group is a layer of nodes.
type Group struct {
	Layer wheel.Layer
	Nodes []Node
}

// Scene is the retained tree for one chart.
type Scene struct {
	Size       int
	Title      string
	Background string
	Groups     []Group
}

// Build groups plan primitives by layer. Empty layers are omitted.
func Build(plan wheel.Plan, title string) *Scene {
	s := &Scene{
		Size:       int(math.Ceil(plan.Size)),
		Title:      title,
		Background: plan.Background,
	}
	for _, layer := range wheel.Layers() {
		prims := plan.Layer(layer)
		if len(prims) == 0 {
			continue
		}
		g := Group{Layer: layer, Nodes: make([]Node, 0, len(prims))}
		for _, p := range prims {
			g.Nodes = append(g.Nodes, Node{ID: p.ID, Class: p.Class, Primitive: p})
		}
		s.Groups = append(s.Groups, g)
	}
	return s
}

// Find returns the node with the given id.
func (s *Scene) Find(id string) (Node, bool) {
	for _, g := range s.Groups {
		for _, n := range g.Nodes {
			if n.ID == id {
				return n, true
			}
		}
	}
	return Node{}, false
}

// Group returns the group for a layer.
func (s *Scene) Group(layer wheel.Layer) (Group, bool) {
	for _, g := range s.Groups {
		if g.Layer == layer {
			return g, true
		}
	}
	return Group{}, false
}

// WriteSVG serializes the scene.
func (s *Scene) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.Size, s.Size)
	if s.Title != "" {
		canvas.Title(s.Title)
	}
	if s.Background != "" {
		canvas.Rect(0, 0, s.Size, s.Size, "fill:"+s.Background)
	}
	for _, g := range s.Groups {
		canvas.Group(attr("id", "layer-"+string(g.Layer)))
		for _, n := range g.Nodes {
			writeNode(canvas, n)
		}
		canvas.Gend()
	}
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("scene: writing svg: %w", ew.err)
	}
	return nil
}

func writeNode(canvas *svg.SVG, n Node) {
	p := n.Primitive
	attrs := nodeAttrs(n)
	switch p.Shape {
	case wheel.ShapeCircle:
		canvas.Circle(px(p.Center.X), px(p.Center.Y), px(p.Radius), append(attrs, shapeStyle(p))...)
	case wheel.ShapeLine:
		canvas.Line(px(p.From.X), px(p.From.Y), px(p.To.X), px(p.To.Y), append(attrs, shapeStyle(p))...)
	case wheel.ShapeWedge:
		canvas.Path(wedgePath(p), append(attrs, shapeStyle(p))...)
	case wheel.ShapeText:
		style := fmt.Sprintf("text-anchor:middle;dominant-baseline:central;font-size:%.1fpx;fill:%s", p.FontSize, p.Fill)
		canvas.Text(px(p.Center.X), px(p.Center.Y), p.Text, append(attrs, style)...)
	}
}

func nodeAttrs(n Node) []string {
	var out []string
	if n.ID != "" {
		out = append(out, attr("id", n.ID))
	}
	if n.Class != "" {
		out = append(out, attr("class", n.Class))
	}
	return out
}

// shapeStyle renders fill, stroke and dash as an inline style.
func shapeStyle(p wheel.Primitive) string {
	var parts []string
	if p.Fill != "" {
		parts = append(parts, "fill:"+p.Fill)
	} else {
		parts = append(parts, "fill:none")
	}
	if p.Stroke.Width > 0 {
		parts = append(parts,
			"stroke:"+p.Stroke.Color,
			fmt.Sprintf("stroke-width:%.2f", p.Stroke.Width),
		)
		if len(p.Stroke.Dash) > 0 {
			dash := make([]string, len(p.Stroke.Dash))
			for i, d := range p.Stroke.Dash {
				dash[i] = fmt.Sprintf("%.1f", d)
			}
			parts = append(parts, "stroke-dasharray:"+strings.Join(dash, ","))
		}
	}
	if p.Opacity > 0 && p.Opacity < 1 {
		parts = append(parts, fmt.Sprintf("opacity:%.2f", p.Opacity))
	}
	return strings.Join(parts, ";")
}

// wedgePath returns path data for a ring sector. Screen angles grow
// clockwise on a y-down canvas, so the outer arc uses sweep flag 1.
func wedgePath(p wheel.Primitive) string {
	point := func(angle, r float64) (float64, float64) {
		rad := angle * math.Pi / 180
		return p.Center.X + math.Cos(rad)*r, p.Center.Y + math.Sin(rad)*r
	}
	large := 0
	if p.Sweep > 180 {
		large = 1
	}
	end := p.Start + p.Sweep
	ox1, oy1 := point(p.Start, p.Radius)
	ox2, oy2 := point(end, p.Radius)
	ix2, iy2 := point(end, p.Inner)
	ix1, iy1 := point(p.Start, p.Inner)
	return fmt.Sprintf("M%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 0 %.2f,%.2f Z",
		ox1, oy1, p.Radius, p.Radius, large, ox2, oy2,
		ix2, iy2, p.Inner, p.Inner, large, ix1, iy1)
}

func attr(name, value string) string {
	return fmt.Sprintf("%s=%q", name, value)
}

func px(v float64) int {
	return int(math.Round(v))
}

// errWriter records the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
