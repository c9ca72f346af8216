package tui

import "unicode/utf8"

// Minimum terminal dimensions for usable rendering.
const (
	MinWidth  = 40
	MinHeight = 12
)

// Layout breakpoints for adaptive rendering.
const (
	// CompactWidth hides the tooltip panel; the tooltip title moves to the
	// status bar.
	CompactWidth = 80
	// PanelWidth is the outer width of the tooltip panel, border included.
	PanelWidth = 38
)

// Fixed rows around the wheel.
const (
	statusRows = 1
	footerRows = 2
	scrollStep = 3
)

// region is a rectangle of terminal cells.
type region struct {
	Left, Top, Cols, Rows int
}

// contains reports whether the cell lies inside r.
func (r region) contains(col, row int) bool {
	return col >= r.Left && col < r.Left+r.Cols && row >= r.Top && row < r.Top+r.Rows
}

// chartRegion returns the cells given to the wheel for a terminal of the
// given size with a footer of footer rows.
func chartRegion(width, height, footer int) region {
	cols := width
	if width >= CompactWidth {
		cols = width - PanelWidth - 1
	}
	rows := height - statusRows - footer
	return region{Left: 0, Top: statusRows, Cols: max(cols, 1), Rows: max(rows, 1)}
}

// TruncateWithEllipsis truncates s to maxLen runes, appending "..." if truncated.
// If maxLen is less than 4, returns s truncated to maxLen runes without ellipsis.
// Returns s unchanged if it fits within maxLen runes.
func TruncateWithEllipsis(s string, maxLen int) string {
	runeCount := utf8.RuneCountInString(s)
	if runeCount <= maxLen {
		return s
	}
	if maxLen < 4 {
		if maxLen <= 0 {
			return ""
		}
		return truncateToNRunes(s, maxLen)
	}
	return truncateToNRunes(s, maxLen-3) + "..."
}

// truncateToNRunes returns the first n runes of s as a string.
func truncateToNRunes(s string, n int) string {
	i := 0
	for j := 0; j < n; j++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}
