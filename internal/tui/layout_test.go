package tui

import "testing"

func TestTruncateWithEllipsis(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"fits exactly", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"maxLen 3 no ellipsis", "abcdef", 3, "abc"},
		{"maxLen 0", "abcdef", 0, ""},
		{"empty string", "", 5, ""},
		{"long chart name", "charts/einstein-1879-03-14.txt", 15, "charts/einst..."},
		{"multibyte runes truncated", "☉☽☿♀♂♃♄", 5, "☉☽..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TruncateWithEllipsis(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestChartRegion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		width, height int
		want          region
	}{
		{"wide leaves room for panel", 120, 40, region{Top: 1, Cols: 120 - PanelWidth - 1, Rows: 37}},
		{"compact uses full width", 70, 30, region{Top: 1, Cols: 70, Rows: 27}},
		{"degenerate clamps to one cell", 1, 2, region{Top: 1, Cols: 1, Rows: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := chartRegion(tt.width, tt.height, footerRows); got != tt.want {
				t.Errorf("chartRegion(%d, %d) = %+v, want %+v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestRegionContains(t *testing.T) {
	t.Parallel()
	r := region{Left: 2, Top: 1, Cols: 3, Rows: 2}
	cases := []struct {
		col, row int
		want     bool
	}{
		{2, 1, true},
		{4, 2, true},
		{5, 1, false},
		{2, 3, false},
		{1, 1, false},
	}
	for _, c := range cases {
		if got := r.contains(c.col, c.row); got != c.want {
			t.Errorf("contains(%d, %d) = %v, want %v", c.col, c.row, got, c.want)
		}
	}
}

func TestKeyMap_Help(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
	seen := map[string]bool{}
	for _, col := range km.FullHelp() {
		for _, b := range col {
			k := b.Help().Key
			if seen[k] {
				t.Errorf("duplicate help key %q", k)
			}
			seen[k] = true
		}
	}
}
