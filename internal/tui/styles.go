package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/natal/internal/wheel"
)

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // Cyan, primary accent
	colorAccent      = lipgloss.Color("#FFD700") // Gold, selection
	colorDanger      = lipgloss.Color("#FF5252") // Red, rejected updates
	colorMuted       = lipgloss.Color("#636363") // Gray, de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray, normal text
	colorWhite       = lipgloss.Color("#EEEEEE") // Off-white, primary text
	colorSurface     = lipgloss.Color("#1E1E2E") // Dark surface, status bar bg
	colorSurfaceDim  = lipgloss.Color("#181825") // Darkest surface, footer bg
	colorWheelStroke = lipgloss.Color("#5A5A6E") // Braille dots
)

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorWhite)

	styleStatusFlagOn = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorAccent)

	styleStatusFlagOff = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorMuted)

	styleStatusError = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorDanger).
				Bold(true)
)

// Tooltip panel styles: rounded border, styled title.
var (
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted).
				Padding(0, 1)

	stylePanelActive = stylePanelBorder.
				BorderForeground(colorPrimary)

	stylePanelTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	stylePanelText = lipgloss.NewStyle().
			Foreground(colorWhite)

	stylePanelDim = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)

// Wheel styles.
var (
	styleWheel = lipgloss.NewStyle().
			Foreground(colorWheelStroke)

	styleHighlight = lipgloss.NewStyle().
			Foreground(colorSurface).
			Background(colorAccent).
			Bold(true)

	styleCursor = lipgloss.NewStyle().
			Reverse(true)
)

// Footer style: top border, dim background.
var styleFooter = lipgloss.NewStyle().
	Background(colorSurfaceDim).
	Border(lipgloss.NormalBorder(), true, false, false, false).
	BorderForeground(colorMuted)

// TerminalStyle is the wheel palette for dark terminals. Only label colors
// reach the braille frame; dots take styleWheel.
func TerminalStyle() wheel.Style {
	s := wheel.DefaultStyle()
	s.Background = "#1E1E2E"
	s.SignGlyph = "#C39BFF"
	s.Body = "#EEEEEE"
	s.Label = "#EEEEEE"
	s.AxisLine = "#00BFFF"
	s.Retrograde = "#FF5252"
	return s
}
