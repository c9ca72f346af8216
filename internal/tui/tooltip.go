package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/papapumpkin/natal/internal/hittest"
)

// panelContent is the text width inside the panel border and padding.
const panelContent = PanelWidth - 4

// tooltip scrolls the description body under the panel title. Interpretation
// text for a planet or an aspect pair can run longer than the panel.
type tooltip struct {
	vp    viewport.Model
	rows  int // rows available below the title
	lines int
}

func newTooltip() tooltip {
	return tooltip{vp: viewport.New(panelContent, 1), rows: 1}
}

// setRows sizes the body to rows, keeping two rows for scroll hints when the
// content overflows.
func (t *tooltip) setRows(rows int) {
	t.rows = max(rows, 1)
	t.fit()
}

func (t *tooltip) fit() {
	t.vp.Width = panelContent
	t.vp.Height = t.rows
	if t.lines > t.rows && t.rows > 2 {
		t.vp.Height = t.rows - 2
	}
	t.vp.SetYOffset(t.vp.YOffset)
}

// set replaces the body with d's lines and scrolls to the top.
func (t *tooltip) set(d hittest.Description) {
	body := make([]string, 0, len(d.Lines))
	for _, l := range d.Lines {
		body = append(body, stylePanelText.Width(panelContent).Render(l))
	}
	content := strings.Join(body, "\n")
	t.lines = 0
	if content != "" {
		t.lines = strings.Count(content, "\n") + 1
	}
	t.vp.SetContent(content)
	t.vp.GotoTop()
	t.fit()
}

func (t *tooltip) scroll(delta int) {
	t.vp.SetYOffset(t.vp.YOffset + delta)
}

func (t tooltip) above() int { return t.vp.YOffset }

func (t tooltip) below() int {
	return max(t.lines-t.vp.YOffset-t.vp.Height, 0)
}

func (t tooltip) view() string {
	var parts []string
	if n := t.above(); n > 0 {
		parts = append(parts, stylePanelDim.Render(fmt.Sprintf("↑ %d more", n)))
	}
	parts = append(parts, t.vp.View())
	if n := t.below(); n > 0 {
		parts = append(parts, stylePanelDim.Render(fmt.Sprintf("↓ %d more", n)))
	}
	return strings.Join(parts, "\n")
}
