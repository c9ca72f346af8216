package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/natal/internal/braille"
	"github.com/papapumpkin/natal/internal/hittest"
	"github.com/papapumpkin/natal/internal/zodiac"
)

// View renders the full screen.
func (m Model) View() string {
	if m.Width < MinWidth || m.Height < MinHeight {
		return fmt.Sprintf("terminal too small (%dx%d, need %dx%d)", m.Width, m.Height, MinWidth, MinHeight)
	}

	body := strings.Join(m.renderWheel(), "\n")
	if m.Width >= CompactWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.renderPanel())
	}
	footer := styleFooter.Width(m.Width).Render(m.Help.View(m.Keys))
	return lipgloss.JoinVertical(lipgloss.Left, m.renderStatusBar(), body, footer)
}

// renderStatusBar renders the single top line: name, generation, layer
// flags and the last rejected update.
func (m Model) renderStatusBar() string {
	left := styleStatusLabel.Render("☉ NATAL") + styleStatusValue.Render("  ")
	if name := TruncateWithEllipsis(m.Title, 24); name != "" {
		left += styleStatusValue.Render(name + "  ")
	}

	snap := m.store.Current()
	var right []string
	if snap != nil {
		left += styleStatusValue.Render(fmt.Sprintf("gen %d", snap.Generation))
		opts := snap.Options
		right = append(right,
			flag("aspects", opts.ShowAspects),
			flag("ext", opts.ShowExtended),
			flag("deg", opts.ShowDegreeMarkers),
			flag("minor", opts.AspectTable == "extended"),
		)
	} else {
		left += styleStatusFlagOff.Render("no chart")
	}
	right = append(right, flag("touch", m.input == hittest.Touch))

	switch {
	case m.rejected != nil:
		left += styleStatusValue.Render("  ") + styleStatusError.Render("✗ "+rejectSummary(m.rejected))
	case m.message != "":
		left += styleStatusValue.Render("  ") + styleStatusFlagOff.Render(m.message)
	case m.Width < CompactWidth && !m.desc.Empty():
		left += styleStatusValue.Render("  " + m.desc.Title)
	}

	rightStr := strings.Join(right, styleStatusValue.Render(" "))
	inner := m.Width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if gap < 1 {
		// Drop the flags before truncating the name.
		rightStr = ""
		gap = max(inner-lipgloss.Width(left), 0)
	}
	return styleStatusBar.Width(m.Width).MaxWidth(m.Width).Render(left + styleStatusValue.Render(strings.Repeat(" ", gap)) + rightStr)
}

func flag(name string, on bool) string {
	if on {
		return styleStatusFlagOn.Render(name)
	}
	return styleStatusFlagOff.Render(name)
}

// renderPanel renders the tooltip panel beside the wheel.
func (m Model) renderPanel() string {
	var lines []string
	style := stylePanelBorder

	if m.desc.Empty() {
		lines = append(lines, stylePanelTitle.Render("Chart"))
		if snap := m.store.Current(); snap != nil {
			if asc, ok := snap.Position(zodiac.ASC); ok {
				lines = append(lines, stylePanelDim.Render(fmt.Sprintf("ASC %s %s", asc.Sign, asc.DMS())))
			}
			lines = append(lines,
				stylePanelDim.Render(fmt.Sprintf("%d bodies · %d aspects", len(snap.Positions), len(snap.Aspects))),
				"",
				stylePanelDim.Render(fmt.Sprintf("Point at a glyph or aspect line (%s).", m.input)),
			)
		} else {
			lines = append(lines, stylePanelDim.Render("No chart loaded."))
		}
	} else {
		if m.pinned {
			style = stylePanelActive
		}
		lines = append(lines, stylePanelTitle.Render(TruncateWithEllipsis(m.desc.Title, panelContent)), m.tip.view())
	}

	return style.
		Width(PanelWidth - 2).
		Height(max(m.region.Rows-2, 1)).
		MaxHeight(m.region.Rows).
		Render(strings.Join(lines, "\n"))
}

// renderWheel styles the braille frame: dots dimmed, labels in their plan
// color, the hit glyph highlighted and the crosshair reversed.
func (m Model) renderWheel() []string {
	if m.frame == nil {
		out := make([]string, m.region.Rows)
		if len(out) > 0 {
			out[len(out)/2] = lipgloss.PlaceHorizontal(m.region.Cols, lipgloss.Center, stylePanelDim.Render("waiting for a valid chart"))
		}
		return out
	}

	highlight := ""
	if m.hit.Kind == hittest.Planet {
		highlight = "planet-" + m.hit.Position.Name
	}
	cursor := pointer{col: -1, row: -1}
	if m.cursor && m.pointer.valid {
		cursor = m.pointer
	}
	return composeFrame(m.frame, highlight, cursor)
}

// cellStyle identifies a run of identically styled cells.
type cellStyle struct {
	key   string
	style lipgloss.Style
}

func composeFrame(f *braille.Frame, highlight string, cursor pointer) []string {
	labels := make([]map[int]cellStyle, f.Rows)
	grid := make([][]rune, f.Rows)
	for i := range grid {
		if i < len(f.Lines) {
			grid[i] = []rune(f.Lines[i])
		}
	}
	for _, lb := range f.Labels {
		if lb.Row < 0 || lb.Row >= f.Rows {
			continue
		}
		st := cellStyle{key: "label" + lb.Color, style: lipgloss.NewStyle().Foreground(lipgloss.Color(lb.Color))}
		if lb.ID != "" && lb.ID == highlight {
			st = cellStyle{key: "highlight", style: styleHighlight}
		}
		if labels[lb.Row] == nil {
			labels[lb.Row] = make(map[int]cellStyle)
		}
		for i, r := range []rune(lb.Text) {
			c := lb.Col + i
			if c >= 0 && c < len(grid[lb.Row]) {
				grid[lb.Row][c] = r
				labels[lb.Row][c] = st
			}
		}
	}

	wheelStyle := cellStyle{key: "wheel", style: styleWheel}
	cursorStyle := cellStyle{key: "cursor", style: styleCursor}
	out := make([]string, f.Rows)
	for row, runes := range grid {
		var sb, run strings.Builder
		current := wheelStyle
		flush := func() {
			if run.Len() > 0 {
				sb.WriteString(current.style.Render(run.String()))
				run.Reset()
			}
		}
		for col, r := range runes {
			st := wheelStyle
			if s, ok := labels[row][col]; ok {
				st = s
			}
			if cursor.valid && row == cursor.row && col == cursor.col {
				st = cursorStyle
			}
			if st.key != current.key {
				flush()
				current = st
			}
			run.WriteRune(r)
		}
		flush()
		out[row] = sb.String()
	}
	return out
}
