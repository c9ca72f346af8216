package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/wheel"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := map[string]color.RGBA{
		"#FF0000": {255, 0, 0, 255},
		"#0000ff": {0, 0, 255, 255},
		"#fff":    {255, 255, 255, 255},
		"4ECDC4":  {0x4E, 0xCD, 0xC4, 255},
		"":        {0, 0, 0, 255},
		"#zzzzzz": {0, 0, 0, 255},
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseColor(in), in)
	}
}

func TestInSweep(t *testing.T) {
	t.Parallel()

	assert.True(t, inSweep(10, 0, 30))
	assert.True(t, inSweep(-5, 350, 30), "wraps past 0")
	assert.True(t, inSweep(355, 350, 30))
	assert.False(t, inSweep(25, 350, 30))
	assert.False(t, inSweep(180, 0, 30))
}

func TestDashOn(t *testing.T) {
	t.Parallel()

	assert.True(t, dashOn(nil, 42))
	dash := []float64{3, 3}
	assert.True(t, dashOn(dash, 1))
	assert.False(t, dashOn(dash, 4))
	assert.True(t, dashOn(dash, 7))
}

func TestRender_Primitives(t *testing.T) {
	t.Parallel()

	plan := wheel.Plan{
		Size:       50,
		Background: "#FFFFFF",
		Primitives: []wheel.Primitive{
			{Shape: wheel.ShapeLine, From: r2.Point{X: 0, Y: 25}, To: r2.Point{X: 50, Y: 25}, Stroke: wheel.Stroke{Color: "#000000", Width: 2}},
			{Shape: wheel.ShapeCircle, Center: r2.Point{X: 10, Y: 10}, Radius: 4, Fill: "#FF0000"},
		},
	}
	img, err := Render(plan)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())

	corner := img.RGBAAt(45, 5)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, corner)

	onLine := img.RGBAAt(25, 25)
	assert.Less(t, onLine.R, uint8(100))

	dot := img.RGBAAt(10, 10)
	assert.Greater(t, dot.R, uint8(200))
	assert.Less(t, dot.G, uint8(60))
}

func TestRender_InvalidSize(t *testing.T) {
	t.Parallel()

	_, err := Render(wheel.Plan{})
	assert.Error(t, err)
}

func TestEncode_Chart(t *testing.T) {
	t.Parallel()

	opts := chart.DefaultOptions()
	opts.Size = 200
	snap, err := chart.Build("ASC,Aries,0°00'\nSun,Leo,10°00'\nSaturn,Aquarius,10°00'", nil, opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, wheel.Build(snap, wheel.DefaultStyle())))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}
