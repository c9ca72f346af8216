// Package tui is the interactive chart viewer: a braille wheel that reacts
// to mouse motion and a keyboard crosshair, with a tooltip panel fed by the
// hit-tester and live reload of the chart file.
package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program for the viewer. The program uses
// the alternate screen buffer and reports all mouse motion for hover.
func NewProgram(opts Options, extra ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
	allOpts = append(allOpts, extra...)
	return tea.NewProgram(NewModel(opts), allOpts...)
}

// Run creates and runs the viewer, blocking until it exits.
func Run(opts Options) error {
	p := NewProgram(opts)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
// Useful for testing or redirecting output.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
