package zodiac

// Body names recognised by the chart engine.
const (
	Sun     = "Sun"
	Moon    = "Moon"
	Mercury = "Mercury"
	Venus   = "Venus"
	Mars    = "Mars"
	Jupiter = "Jupiter"
	Saturn  = "Saturn"
	Uranus  = "Uranus"
	Neptune = "Neptune"
	Pluto   = "Pluto"

	Chiron  = "Chiron"
	Lilith  = "Lilith"
	Node    = "Node"
	Fortune = "Fortune"
	Vertex  = "Vertex"

	ASC = "ASC"
	MC  = "MC"
	DSC = "DSC"
	IC  = "IC"
)

// Kind classifies a body name.
type Kind int

// Body kinds.
const (
	KindUnknown Kind = iota
	KindPlanet
	KindExtended
	KindAxis
)

// String returns a lowercase label for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlanet:
		return "planet"
	case KindExtended:
		return "extended"
	case KindAxis:
		return "axis"
	default:
		return "unknown"
	}
}

type bodyInfo struct {
	kind   Kind
	glyph  string
	abbrev string
}

var catalogue = map[string]bodyInfo{
	Sun:     {KindPlanet, "☉", "Su"},
	Moon:    {KindPlanet, "☽", "Mo"},
	Mercury: {KindPlanet, "☿", "Me"},
	Venus:   {KindPlanet, "♀", "Ve"},
	Mars:    {KindPlanet, "♂", "Ma"},
	Jupiter: {KindPlanet, "♃", "Ju"},
	Saturn:  {KindPlanet, "♄", "Sa"},
	Uranus:  {KindPlanet, "♅", "Ur"},
	Neptune: {KindPlanet, "♆", "Ne"},
	Pluto:   {KindPlanet, "♇", "Pl"},
	Chiron:  {KindExtended, "⚷", "Ch"},
	Lilith:  {KindExtended, "⚸", "Li"},
	Node:    {KindExtended, "☊", "No"},
	Fortune: {KindExtended, "⊗", "Fo"},
	Vertex:  {KindExtended, "Vx", "Vx"},
	ASC:     {KindAxis, "AC", "AC"},
	MC:      {KindAxis, "MC", "MC"},
	DSC:     {KindAxis, "DC", "DC"},
	IC:      {KindAxis, "IC", "IC"},
}

// aspectBodies is the allow-list of bodies scanned for aspects, in catalogue
// order: the ten classical planets plus the Ascendant.
var aspectBodies = []string{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, ASC,
}

// AspectBodies returns the bodies eligible for aspect scanning.
func AspectBodies() []string {
	out := make([]string, len(aspectBodies))
	copy(out, aspectBodies)
	return out
}

// KindOf returns the kind of the named body.
func KindOf(name string) Kind {
	return catalogue[name].kind
}

// IsAspectBody reports whether name takes part in aspect scanning.
func IsAspectBody(name string) bool {
	for _, b := range aspectBodies {
		if b == name {
			return true
		}
	}
	return false
}

// IsAxis reports whether name is one of ASC, MC, DSC or IC.
func IsAxis(name string) bool {
	return KindOf(name) == KindAxis
}

// IsRingBody reports whether name is drawn as a glyph on the planet ring:
// a classical planet or an extended point, never an axis.
func IsRingBody(name string) bool {
	k := KindOf(name)
	return k == KindPlanet || k == KindExtended
}

// Glyph returns the astrological symbol for a body, or its name when the
// body is not catalogued.
func Glyph(name string) string {
	if info, ok := catalogue[name]; ok {
		return info.glyph
	}
	return name
}

// Abbrev returns a two-letter ASCII abbreviation for a body, for backends
// whose fonts lack astrological symbols.
func Abbrev(name string) string {
	if info, ok := catalogue[name]; ok {
		return info.abbrev
	}
	if len(name) > 2 {
		return name[:2]
	}
	return name
}
