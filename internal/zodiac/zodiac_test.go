package zodiac

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSign(t *testing.T) {
	t.Parallel()

	for i, name := range []string{
		"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
		"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
	} {
		s, ok := ParseSign(name)
		require.True(t, ok, name)
		assert.Equal(t, Sign(i), s)
		assert.Equal(t, name, s.String())
	}

	for _, bad := range []string{"", "aries", "Ophiuchus", "Sag"} {
		_, ok := ParseSign(bad)
		assert.False(t, ok, bad)
	}
}

func TestSignAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		abs  float64
		want Sign
	}{
		{0, Aries},
		{29.99, Aries},
		{30, Taurus},
		{257.15, Sagittarius},
		{296.33, Capricorn},
		{359.99, Pisces},
		{360, Aries},
		{-1, Pisces},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SignAt(tt.abs), "SignAt(%v)", tt.abs)
	}
}

func TestElement(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Fire, Aries.Element())
	assert.Equal(t, Earth, Taurus.Element())
	assert.Equal(t, Air, Gemini.Element())
	assert.Equal(t, Water, Cancer.Element())
	assert.Equal(t, Fire, Sagittarius.Element())
	assert.Equal(t, Water, Pisces.Element())
	assert.Equal(t, "#FF6B6B", Leo.Element().Color())
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0, Normalize(360), 1e-9)
	assert.InDelta(t, 10, Normalize(370), 1e-9)
	assert.InDelta(t, 350, Normalize(-10), 1e-9)
	assert.InDelta(t, 179.5, Normalize(179.5), 1e-9)
}

func TestNewPosition(t *testing.T) {
	t.Parallel()

	p := NewPosition(Sun, Sagittarius, 17, 9, false)
	assert.InDelta(t, 257.15, p.AbsoluteDegree, 1e-9)
	assert.Equal(t, p.AbsoluteDegree, p.VisualDegree)
	assert.Equal(t, "17°09'", p.DMS())
}

func TestFromAbsolute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		abs    float64
		sign   Sign
		degree int
		minute int
	}{
		{"opposite of 1°40' Aries", 181 + 40.0/60, Libra, 1, 40},
		{"rounds to whole minute", 77.15 + 180, Sagittarius, 17, 9},
		{"carry into next sign", 59.9999, Gemini, 0, 0},
		{"wraps past 360", 365.5, Aries, 5, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := FromAbsolute(DSC, tt.abs)
			assert.Equal(t, tt.sign, p.Sign)
			assert.Equal(t, tt.degree, p.Degree)
			assert.Equal(t, tt.minute, p.Minute)
			assert.Equal(t, SignAt(p.AbsoluteDegree), p.Sign)
		})
	}
}

func TestBodyKinds(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAspectBody(Sun))
	assert.True(t, IsAspectBody(ASC))
	assert.False(t, IsAspectBody(MC))
	assert.False(t, IsAspectBody(Chiron))

	assert.True(t, IsRingBody(Pluto))
	assert.True(t, IsRingBody(Vertex))
	assert.False(t, IsRingBody(ASC))
	assert.False(t, IsRingBody("Eris"))

	assert.Equal(t, KindAxis, KindOf(IC))
	assert.Equal(t, "☉", Glyph(Sun))
	assert.Equal(t, "Eris", Glyph("Eris"))
	assert.Equal(t, "Er", Abbrev("Eris"))
	assert.Len(t, AspectBodies(), 11)
}

func TestSignJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewPosition(Moon, Capricorn, 26, 20, true))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sign":"Capricorn"`)

	var p Position
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, Capricorn, p.Sign)
	assert.True(t, p.Retrograde)
}
