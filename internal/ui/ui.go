// Package ui provides human-readable report output for natal: chart
// positions, houses, aspects, validation results and tooltips.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/papapumpkin/natal/internal/ansi"
	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/hittest"
	"github.com/papapumpkin/natal/internal/houses"
	"github.com/papapumpkin/natal/internal/layout"
	"github.com/papapumpkin/natal/internal/notation"
	"github.com/papapumpkin/natal/internal/zodiac"
)

// Printer writes reports to a terminal stream.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a colored printer on stderr.
func New() *Printer {
	return &Printer{w: os.Stderr, color: true}
}

// NewWriter returns a printer on w. Color is only emitted when color is true.
func NewWriter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) c(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansi.Reset
}

// Banner prints the program header.
func (p *Printer) Banner() {
	fmt.Fprintln(p.w, p.c(ansi.Bold+ansi.Cyan, "  ╔══════════════════════════════╗"))
	fmt.Fprintln(p.w, p.c(ansi.Bold+ansi.Cyan, "  ║")+p.c(ansi.Bold, "   NATAL  ")+p.c(ansi.Dim, "birth-chart wheel")+p.c(ansi.Bold+ansi.Cyan, "   ║"))
	fmt.Fprintln(p.w, p.c(ansi.Bold+ansi.Cyan, "  ╚══════════════════════════════╝"))
	fmt.Fprintln(p.w)
}

// Error prints msg as an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, "%s%s\n", p.c(ansi.Red+ansi.Bold, "error: "), msg)
}

// Info prints msg dimmed.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, p.c(ansi.Dim, msg))
}

// Report prints positions, houses and aspects.
func (p *Printer) Report(snap *chart.Snapshot) {
	p.Positions(snap)
	fmt.Fprintln(p.w)
	if p.Clusters(snap) {
		fmt.Fprintln(p.w)
	}
	p.Houses(snap)
	fmt.Fprintln(p.w)
	p.Aspects(snap)
	if len(snap.Aspects) > 0 {
		fmt.Fprintln(p.w)
		p.Grid(snap)
	}
}

// Grid prints the triangular aspect table.
func (p *Printer) Grid(snap *chart.Snapshot) {
	g := AspectGrid{UseColor: p.color}
	fmt.Fprint(p.w, g.Render(snap))
}

// Positions prints one row per body. Bodies whose drawn degree differs
// from the true degree show the visual shift.
func (p *Printer) Positions(snap *chart.Snapshot) {
	fmt.Fprintln(p.w, p.c(ansi.Bold, "positions:"))
	for _, pos := range snap.Positions {
		name := fmt.Sprintf("%-8s", pos.Name)
		switch {
		case pos.Kind() == zodiac.KindAxis:
			name = p.c(ansi.Magenta, name)
		case pos.Kind() == zodiac.KindExtended:
			name = p.c(ansi.Dim, name)
		}
		sign := p.c(ansi.Foreground(pos.Sign.Element().Color()), fmt.Sprintf("%-12s", pos.Sign))
		line := fmt.Sprintf("  %s %s %s %6s  house %-2d",
			name, zodiac.Glyph(pos.Name), sign, pos.DMS(), pos.House)
		if pos.Retrograde {
			line += p.c(ansi.Yellow, " R")
		}
		if pos.Synthesized {
			line += p.c(ansi.Dim, " (derived)")
		}
		if shift := pos.VisualDegree - pos.AbsoluteDegree; shift > 0.005 || shift < -0.005 {
			line += p.c(ansi.Dim, fmt.Sprintf(" drawn %+.2f°", shift))
		}
		fmt.Fprintln(p.w, line)
	}
}

// Clusters prints the groups of ring bodies fanned apart on the wheel and
// reports whether there were any.
func (p *Printer) Clusters(snap *chart.Snapshot) bool {
	shows := layout.Options{ShowExtended: snap.Options.ShowExtended}.Shows
	var printed bool
	for _, group := range layout.Clusters(snap.Positions, shows) {
		if len(group) < 2 {
			continue
		}
		if !printed {
			fmt.Fprintln(p.w, p.c(ansi.Bold, "clusters:"))
			printed = true
		}
		names := make([]string, len(group))
		for i, idx := range group {
			names[i] = snap.Positions[idx].Name
		}
		spread := float64(len(group)-1) * layout.FanSpacing
		fmt.Fprintf(p.w, "  %s %s\n", strings.Join(names, ", "), p.c(ansi.Dim, fmt.Sprintf("fanned over %.0f°", spread)))
	}
	return printed
}

// Houses prints the twelve whole-sign cusps.
func (p *Printer) Houses(snap *chart.Snapshot) {
	fmt.Fprintln(p.w, p.c(ansi.Bold, "houses:"))
	for _, cusp := range snap.Cusps {
		sign := zodiac.SignAt(cusp.AbsoluteDegree)
		fmt.Fprintf(p.w, "  %-5s %s %s\n", houses.Ordinal(cusp.House), sign.Glyph(), sign)
	}
}

// Aspects prints every classified aspect with its orb.
func (p *Printer) Aspects(snap *chart.Snapshot) {
	fmt.Fprintf(p.w, "%s %s\n", p.c(ansi.Bold, "aspects:"), p.c(ansi.Dim, fmt.Sprintf("(%s table)", tableName(snap))))
	if len(snap.Aspects) == 0 {
		fmt.Fprintln(p.w, p.c(ansi.Dim, "  (none)"))
		return
	}
	for _, a := range snap.Aspects {
		fmt.Fprintf(p.w, "  %-8s %s %-14s %-8s orb %.1f°\n",
			a.A, AspectSymbol(a.Type), p.c(aspectColor(a.Type), fmt.Sprintf("%-14s", a.Type)), a.B, a.Orb)
	}
}

func tableName(snap *chart.Snapshot) string {
	if snap.Options.AspectTable == "" {
		return "canonical"
	}
	return snap.Options.AspectTable
}

// ValidateResult prints the outcome of parsing a chart file.
func (p *Printer) ValidateResult(path string, snap *chart.Snapshot, err error) {
	if err == nil {
		fmt.Fprintf(p.w, "%s: %d bodies, %d aspects, ASC %s\n",
			p.c(ansi.Green+ansi.Bold, fmt.Sprintf("✓ %s", path)),
			len(snap.Positions), len(snap.Aspects), ascendant(snap))
		return
	}
	fmt.Fprintf(p.w, "%s\n", p.c(ansi.Red+ansi.Bold, fmt.Sprintf("✗ %s", path)))
	var pe *notation.ParseError
	if errors.As(err, &pe) {
		if pe.Line > 0 {
			fmt.Fprintf(p.w, "  line %d: %s\n", pe.Line, p.c(ansi.Dim, pe.Text))
		}
		fmt.Fprintf(p.w, "  rule: %s\n", pe.Rule)
	}
	fmt.Fprintf(p.w, "  %s%v\n", p.c(ansi.Red, "• "), err)
}

func ascendant(snap *chart.Snapshot) string {
	asc, ok := snap.Position(zodiac.ASC)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%s %s", asc.Sign, asc.DMS())
}

// Tooltip prints a hit description, or "no hit".
func (p *Printer) Tooltip(desc hittest.Description) {
	if desc.Empty() {
		fmt.Fprintln(p.w, p.c(ansi.Dim, "no hit"))
		return
	}
	fmt.Fprintln(p.w, p.c(ansi.Bold+ansi.Cyan, desc.Title))
	for _, line := range desc.Lines {
		fmt.Fprintf(p.w, "  %s\n", line)
	}
}

// Rendered reports a written output file.
func (p *Printer) Rendered(path, format string, generation uint64) {
	fmt.Fprintf(p.w, "%s %s %s\n", p.c(ansi.Green, "◆ "+format), path, p.c(ansi.Dim, fmt.Sprintf("(generation %d)", generation)))
}

// StatusLine formats the one-line watch status (without ANSI escape prefix).
// Format: [natal] gen 3 | 14 bodies | 12 aspects
func StatusLine(snap *chart.Snapshot) string {
	if snap == nil {
		return "[natal] no chart"
	}
	return fmt.Sprintf("[natal] gen %d | %d bodies | %d aspects", snap.Generation, len(snap.Positions), len(snap.Aspects))
}

// Status writes a carriage-return-overwritten status line. A rejected
// update is appended in red while the previous generation stays shown.
func (p *Printer) Status(snap *chart.Snapshot, err error) {
	line := p.c(ansi.Cyan, StatusLine(snap))
	if err != nil {
		line += " " + p.c(ansi.Red, "rejected: "+firstLine(err.Error()))
	}
	// \r returns to start of line; ClearLine drops leftovers from a longer line.
	if p.color {
		line = ansi.ClearLine + line
	}
	fmt.Fprintf(p.w, "\r%s", line)
}

// StatusDone ends the status line so later output does not overwrite it.
func (p *Printer) StatusDone() {
	fmt.Fprintln(p.w)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
