package notation

import (
	"strings"

	"github.com/papapumpkin/natal/internal/zodiac"
)

// Format renders a position back into a chart record.
func Format(p zodiac.Position) string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte(',')
	b.WriteString(p.Sign.String())
	b.WriteByte(',')
	b.WriteString(p.DMS())
	if p.Retrograde {
		b.WriteByte(',')
		b.WriteString(RetrogradeMarker)
	}
	return b.String()
}

// FormatAll renders positions as newline-separated records. Synthesized
// axes are skipped so the output reparses to the same input set.
func FormatAll(positions []zodiac.Position) string {
	lines := make([]string, 0, len(positions))
	for _, p := range positions {
		if p.Synthesized {
			continue
		}
		lines = append(lines, Format(p))
	}
	return strings.Join(lines, "\n")
}
