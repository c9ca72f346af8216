// Package chart assembles the derived chart state into an immutable
// Snapshot and keeps the current generation in a Store that swaps whole
// snapshots atomically.
package chart

import (
	"fmt"

	"github.com/papapumpkin/natal/internal/aspect"
	"github.com/papapumpkin/natal/internal/houses"
	"github.com/papapumpkin/natal/internal/interp"
	"github.com/papapumpkin/natal/internal/layout"
	"github.com/papapumpkin/natal/internal/notation"
	"github.com/papapumpkin/natal/internal/zodiac"
)

// Options configure one build of the pipeline.
type Options struct {
	// AspectTable names the aspect table: "canonical" or "extended".
	AspectTable string `json:"aspectTable" toml:"aspect_table" yaml:"aspectTable"`
	// Size is the chart edge length in pixels.
	Size float64 `json:"size" toml:"size" yaml:"size"`
	// ShowExtended lays out Chiron, Lilith, Node, Fortune and Vertex.
	ShowExtended bool `json:"showExtended" toml:"show_extended" yaml:"showExtended"`
	// ShowAspects draws aspect lines and makes them hit-testable.
	ShowAspects bool `json:"showAspects" toml:"show_aspects" yaml:"showAspects"`
	// ShowDegreeMarkers draws the one-degree tick ring.
	ShowDegreeMarkers bool `json:"showDegreeMarkers" toml:"show_degree_markers" yaml:"showDegreeMarkers"`
}

// DefaultOptions returns the desktop chart with every layer visible.
func DefaultOptions() Options {
	return Options{
		AspectTable:       aspect.TableCanonical,
		Size:              layout.BaseSize,
		ShowExtended:      true,
		ShowAspects:       true,
		ShowDegreeMarkers: true,
	}
}

// Snapshot is one immutable generation of derived chart state. Renderers
// and the hit-tester read it; nothing writes to it after Build returns.
type Snapshot struct {
	Generation uint64                    `json:"generation" toml:"generation" yaml:"generation"`
	Options    Options                   `json:"options" toml:"options" yaml:"options"`
	Geometry   layout.Geometry           `json:"geometry" toml:"geometry" yaml:"geometry"`
	Positions  []zodiac.Position         `json:"positions" toml:"positions" yaml:"positions"`
	Cusps      [houses.Count]houses.Cusp `json:"cusps" toml:"cusps" yaml:"cusps"`
	Aspects    []aspect.Aspect           `json:"aspects" toml:"aspects" yaml:"aspects"`
	Layout     layout.Layout             `json:"layout" toml:"layout" yaml:"layout"`
	Source     string                    `json:"-" toml:"-" yaml:"-"`
	Dictionary *interp.Dictionary        `json:"-" toml:"-" yaml:"-"`
}

// Build runs the full pipeline: parse, derive houses and axes, classify
// aspects, lay out glyphs. It is pure; on any error no snapshot is produced.
func Build(raw string, dict *interp.Dictionary, opts Options) (*Snapshot, error) {
	table, err := aspect.TableByName(opts.AspectTable)
	if err != nil {
		return nil, err
	}

	parsed, err := notation.Parse(raw)
	if err != nil {
		return nil, err
	}

	derived, err := houses.Derive(parsed)
	if err != nil {
		return nil, fmt.Errorf("deriving houses: %w", err)
	}

	geom := layout.NewGeometry(opts.Size)
	placed := layout.Compute(derived.Positions, geom, layout.Options{ShowExtended: opts.ShowExtended})

	return &Snapshot{
		Options:    opts,
		Geometry:   geom,
		Positions:  placed.Positions,
		Cusps:      derived.Cusps,
		Aspects:    aspect.Calculate(derived.Positions, table),
		Layout:     placed,
		Source:     raw,
		Dictionary: dict,
	}, nil
}

// Position returns the named position.
func (s *Snapshot) Position(name string) (zodiac.Position, bool) {
	return zodiac.Find(s.Positions, name)
}

// Ascendant returns the Ascendant longitude.
func (s *Snapshot) Ascendant() float64 {
	return s.Layout.Ascendant
}

// VisibleAspects returns the aspects a renderer should draw: all of them
// when aspect lines are shown, none otherwise.
func (s *Snapshot) VisibleAspects() []aspect.Aspect {
	if !s.Options.ShowAspects {
		return nil
	}
	return s.Aspects
}

// AspectsOf returns the aspects involving the named body.
func (s *Snapshot) AspectsOf(name string) []aspect.Aspect {
	var out []aspect.Aspect
	for _, a := range s.Aspects {
		if a.Involves(name) {
			out = append(out, a)
		}
	}
	return out
}
