package scene

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/wheel"
)

// Sun and Moon make a sextile, Sun and Saturn an opposition.
const testChart = "ASC,Aries,0°00'\nSun,Leo,10°00'\nMoon,Libra,10°00'\nSaturn,Aquarius,10°00'\n"

func buildScene(t *testing.T, mutate func(*chart.Options)) *Scene {
	t.Helper()
	opts := chart.DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	snap, err := chart.Build(testChart, nil, opts)
	require.NoError(t, err)
	return Build(wheel.Build(snap, wheel.DefaultStyle()), "natal chart")
}

func TestBuild_Groups(t *testing.T) {
	t.Parallel()

	s := buildScene(t, nil)
	assert.Equal(t, 800, s.Size)
	var layers []wheel.Layer
	for _, g := range s.Groups {
		layers = append(layers, g.Layer)
	}
	assert.Equal(t, wheel.Layers(), layers)

	sun, ok := s.Find("planet-Sun")
	require.True(t, ok)
	assert.Contains(t, sun.Class, "planet")

	_, ok = s.Find("aspect-Sun-Saturn")
	assert.True(t, ok)
}

func TestBuild_OmitsEmptyLayers(t *testing.T) {
	t.Parallel()

	s := buildScene(t, func(o *chart.Options) {
		o.ShowAspects = false
		o.ShowDegreeMarkers = false
	})
	_, ok := s.Group(wheel.LayerAspects)
	assert.False(t, ok)
	_, ok = s.Group(wheel.LayerDegrees)
	assert.False(t, ok)
	_, ok = s.Group(wheel.LayerBodies)
	assert.True(t, ok)
}

func TestWriteSVG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, buildScene(t, nil).WriteSVG(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<title>natal chart</title>")
	assert.Contains(t, out, `id="layer-zodiac"`)
	assert.Contains(t, out, `id="layer-aspects"`)
	assert.Contains(t, out, `id="planet-Sun"`)
	assert.Contains(t, out, `id="aspect-Sun-Moon"`)
	assert.Contains(t, out, "stroke-dasharray:3.0,3.0")
	assert.Contains(t, out, "<path")
	assert.Contains(t, out, "☉")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestWedgePath(t *testing.T) {
	t.Parallel()

	p := wheel.Primitive{Shape: wheel.ShapeWedge, Center: r2.Point{X: 100, Y: 100}, Inner: 50, Radius: 100, Start: 0, Sweep: 90}
	assert.Equal(t, "M200.00,100.00 A100.00,100.00 0 0 1 100.00,200.00 L100.00,150.00 A50.00,50.00 0 0 0 150.00,100.00 Z", wedgePath(p))
}

func TestShapeStyle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fill:none;stroke:#000;stroke-width:1.50",
		shapeStyle(wheel.Primitive{Stroke: wheel.Stroke{Color: "#000", Width: 1.5}}))
	assert.Equal(t, "fill:#FF6B6B;opacity:0.35",
		shapeStyle(wheel.Primitive{Fill: "#FF6B6B", Opacity: 0.35}))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVG_Error(t *testing.T) {
	t.Parallel()

	err := buildScene(t, nil).WriteSVG(failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
