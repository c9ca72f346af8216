package layout

import (
	"sort"

	"github.com/papapumpkin/natal/internal/zodiac"
)

// ClusterThreshold is the largest gap, exclusive, between neighbouring
// glyph bodies that still joins them into one cluster.
const ClusterThreshold = 12.0

// FanSpacing is the arc between fanned-out members of a cluster.
const FanSpacing = 9.0

// member is one body inside a cluster. deg is unwrapped: it may exceed 360
// when a cluster straddles Aries 0°.
type member struct {
	index int
	deg   float64
}

// Clusters groups the positions selected by include into single-linkage
// clusters. Each cluster lists indices into positions, ordered by
// longitude along the cluster.
func Clusters(positions []zodiac.Position, include func(zodiac.Position) bool) [][]int {
	groups := clusters(positions, include)
	out := make([][]int, len(groups))
	for i, g := range groups {
		out[i] = make([]int, len(g))
		for j, m := range g {
			out[i][j] = m.index
		}
	}
	return out
}

func clusters(positions []zodiac.Position, include func(zodiac.Position) bool) [][]member {
	var sorted []member
	for i, p := range positions {
		if include(p) {
			sorted = append(sorted, member{index: i, deg: p.AbsoluteDegree})
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].deg < sorted[b].deg })

	groups := [][]member{{sorted[0]}}
	for _, m := range sorted[1:] {
		last := groups[len(groups)-1]
		if m.deg-last[len(last)-1].deg < ClusterThreshold {
			groups[len(groups)-1] = append(last, m)
			continue
		}
		groups = append(groups, []member{m})
	}

	// Join the first and last clusters across 0°.
	if n := len(groups); n > 1 {
		first, last := groups[0], groups[n-1]
		if first[0].deg+360-last[len(last)-1].deg < ClusterThreshold {
			merged := append([]member(nil), last...)
			for _, m := range first {
				merged = append(merged, member{index: m.index, deg: m.deg + 360})
			}
			groups = append(groups[1:n-1], merged)
		}
	}
	return groups
}

// Decluster returns a copy of positions with VisualDegree set. Members of a
// cluster of N > 1 are spaced FanSpacing apart across (N-1)*FanSpacing
// degrees centered on the cluster mean. Everything else keeps
// VisualDegree equal to AbsoluteDegree.
func Decluster(positions []zodiac.Position, include func(zodiac.Position) bool) []zodiac.Position {
	out := make([]zodiac.Position, len(positions))
	copy(out, positions)
	for i := range out {
		out[i].VisualDegree = out[i].AbsoluteDegree
	}

	for _, g := range clusters(positions, include) {
		if len(g) < 2 {
			continue
		}
		var sum float64
		for _, m := range g {
			sum += m.deg
		}
		mean := sum / float64(len(g))
		start := mean - float64(len(g)-1)*FanSpacing/2
		for k, m := range g {
			out[m.index].VisualDegree = zodiac.Normalize(start + float64(k)*FanSpacing)
		}
	}
	return out
}
