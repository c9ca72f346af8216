// Package interp holds the interpretation dictionary: descriptive text keyed
// by body, house, sign placement and aspect. Every lookup reports a miss
// instead of failing, so absent text simply drops out of a tooltip.
package interp

import "strings"

// PlanetEntry describes one body.
type PlanetEntry struct {
	Description string `json:"description" toml:"description" yaml:"description"`
}

// AspectEntry describes one aspect type. Planets holds pair-specific text
// keyed "Name1_Name2".
type AspectEntry struct {
	General string            `json:"general" toml:"general" yaml:"general"`
	Planets map[string]string `json:"planets,omitempty" toml:"planets,omitempty" yaml:"planets,omitempty"`
}

// Dictionary is the interpretation table. A nil *Dictionary is valid and
// misses every lookup.
type Dictionary struct {
	Planets map[string]PlanetEntry `json:"planets" toml:"planets" yaml:"planets"`
	Houses  map[string]string      `json:"houses" toml:"houses" yaml:"houses"`
	// SignTexts holds body-in-sign text keyed by body, then sign.
	SignTexts map[string]map[string]string `json:"planetInSign" toml:"planetInSign" yaml:"planetInSign"`
	Aspects   map[string]AspectEntry       `json:"aspects" toml:"aspects" yaml:"aspects"`
}

// PairKey joins two body names into the pair-specific aspect key.
func PairKey(a, b string) string {
	return a + "_" + b
}

// Planet returns the description of a body.
func (d *Dictionary) Planet(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	return nonEmpty(d.Planets[name].Description)
}

// House returns the meaning of a house by its ordinal key ("1st".."12th").
func (d *Dictionary) House(ordinal string) (string, bool) {
	if d == nil {
		return "", false
	}
	return nonEmpty(d.Houses[ordinal])
}

// PlanetInSign returns the text for a body placed in a sign.
func (d *Dictionary) PlanetInSign(name, sign string) (string, bool) {
	if d == nil {
		return "", false
	}
	return nonEmpty(d.SignTexts[name][sign])
}

// AspectGeneral returns the general text for an aspect type.
func (d *Dictionary) AspectGeneral(aspectType string) (string, bool) {
	if d == nil {
		return "", false
	}
	return nonEmpty(d.Aspects[aspectType].General)
}

// AspectPair returns the pair-specific text for an aspect, trying a_b and
// then b_a.
func (d *Dictionary) AspectPair(aspectType, a, b string) (string, bool) {
	if d == nil {
		return "", false
	}
	entry := d.Aspects[aspectType]
	if text, ok := nonEmpty(entry.Planets[PairKey(a, b)]); ok {
		return text, true
	}
	return nonEmpty(entry.Planets[PairKey(b, a)])
}

// Merge returns a dictionary with the entries of other layered over d.
// Neither input is modified.
func (d *Dictionary) Merge(other *Dictionary) *Dictionary {
	out := &Dictionary{
		Planets:   map[string]PlanetEntry{},
		Houses:    map[string]string{},
		SignTexts: map[string]map[string]string{},
		Aspects:   map[string]AspectEntry{},
	}
	for _, src := range []*Dictionary{d, other} {
		if src == nil {
			continue
		}
		for k, v := range src.Planets {
			out.Planets[k] = v
		}
		for k, v := range src.Houses {
			out.Houses[k] = v
		}
		for name, signs := range src.SignTexts {
			if out.SignTexts[name] == nil {
				out.SignTexts[name] = map[string]string{}
			}
			for sign, text := range signs {
				out.SignTexts[name][sign] = text
			}
		}
		for k, v := range src.Aspects {
			merged := out.Aspects[k]
			if v.General != "" {
				merged.General = v.General
			}
			if len(v.Planets) > 0 && merged.Planets == nil {
				merged.Planets = map[string]string{}
			}
			for pair, text := range v.Planets {
				merged.Planets[pair] = text
			}
			out.Aspects[k] = merged
		}
	}
	return out
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
