// Package layout maps ecliptic longitudes onto the chart wheel: ring radii,
// the Ascendant-relative screen angle, and cluster fan-out for glyphs that
// would otherwise overlap.
package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"

	"github.com/papapumpkin/natal/internal/zodiac"
)

// BaseSize is the chart edge length, in pixels, at which Scale is 1.
const BaseSize = 800.0

// AxisInset is how far inside the inner zodiac ring axis glyphs sit, at scale 1.
const AxisInset = 10.0

// Radii holds the ring radii of the wheel, in pixels.
type Radii struct {
	OuterZodiac    float64 `json:"outerZodiac" toml:"outer_zodiac" yaml:"outerZodiac"`
	InnerZodiac    float64 `json:"innerZodiac" toml:"inner_zodiac" yaml:"innerZodiac"`
	PlanetRing     float64 `json:"planetRing" toml:"planet_ring" yaml:"planetRing"`
	Label          float64 `json:"label" toml:"label" yaml:"label"`
	HouseLineInner float64 `json:"houseLineInner" toml:"house_line_inner" yaml:"houseLineInner"`
	HouseNumber    float64 `json:"houseNumber" toml:"house_number" yaml:"houseNumber"`
	AspectHub      float64 `json:"aspectHub" toml:"aspect_hub" yaml:"aspectHub"`
}

var baseRadii = Radii{
	OuterZodiac:    350,
	InnerZodiac:    300,
	PlanetRing:     270,
	Label:          230,
	HouseLineInner: 170,
	HouseNumber:    180,
	AspectHub:      170,
}

// Scaled returns r with every radius multiplied by k.
func (r Radii) Scaled(k float64) Radii {
	return Radii{
		OuterZodiac:    r.OuterZodiac * k,
		InnerZodiac:    r.InnerZodiac * k,
		PlanetRing:     r.PlanetRing * k,
		Label:          r.Label * k,
		HouseLineInner: r.HouseLineInner * k,
		HouseNumber:    r.HouseNumber * k,
		AspectHub:      r.AspectHub * k,
	}
}

// Geometry is a sized wheel. All radii derive from the base radii through
// a single scale factor, so their ratios never change.
type Geometry struct {
	Size  float64 `json:"size" toml:"size" yaml:"size"`
	Scale float64 `json:"scale" toml:"scale" yaml:"scale"`
	Radii Radii   `json:"radii" toml:"radii" yaml:"radii"`
}

// NewGeometry returns the geometry for a square chart of the given edge length.
func NewGeometry(size float64) Geometry {
	if size <= 0 {
		size = BaseSize
	}
	k := size / BaseSize
	return Geometry{Size: size, Scale: k, Radii: baseRadii.Scaled(k)}
}

// Preset names for common viewport classes.
const (
	PresetDesktop = "desktop"
	PresetTablet  = "tablet"
	PresetMobile  = "mobile"
)

// PresetSize returns the chart edge length for a viewport class.
func PresetSize(name string) (float64, error) {
	switch strings.ToLower(name) {
	case PresetDesktop, "":
		return 800, nil
	case PresetTablet:
		return 600, nil
	case PresetMobile:
		return 350, nil
	default:
		return 0, fmt.Errorf("unknown preset %q", name)
	}
}

// Center returns the wheel center in canvas coordinates.
func (g Geometry) Center() r2.Point {
	return r2.Point{X: g.Size / 2, Y: g.Size / 2}
}

// AxisRadius is the ring on which ASC, MC, DSC and IC glyphs are drawn.
func (g Geometry) AxisRadius() float64 {
	return g.Radii.InnerZodiac - AxisInset*g.Scale
}

// Point returns the center-relative point at screenAngle degrees and the
// given radius. Y grows downward, as on a canvas.
func (g Geometry) Point(screenAngle, radius float64) r2.Point {
	rad := (s1.Angle(screenAngle) * s1.Degree).Radians()
	return r2.Point{X: math.Cos(rad) * radius, Y: math.Sin(rad) * radius}
}

// ToCanvas converts a center-relative point to canvas coordinates.
func (g Geometry) ToCanvas(p r2.Point) r2.Point {
	return p.Add(g.Center())
}

// FromCanvas converts canvas coordinates to a center-relative point.
func (g Geometry) FromCanvas(p r2.Point) r2.Point {
	return p.Sub(g.Center())
}

// ScreenAngle converts an absolute longitude to a screen angle relative to
// the Ascendant, counterclockwise: the Ascendant lands at 180°, the left of
// the wheel. The result is in [0, 360).
func ScreenAngle(abs, asc float64) float64 {
	return zodiac.Normalize(180 - (abs - asc))
}
