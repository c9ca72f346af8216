package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Clear    key.Binding
	Touch    key.Binding
	Aspects  key.Binding
	Extended key.Binding
	Degrees  key.Binding
	Table    key.Binding
	Glyphs   key.Binding
	Reload   key.Binding
	// ScrollUp and ScrollDown move the tooltip body.
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "inspect"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Touch: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "touch"),
		),
		Aspects: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "aspects"),
		),
		Extended: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "extended"),
		),
		Degrees: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "degrees"),
		),
		Table: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "minor aspects"),
		),
		Glyphs: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "glyphs"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("[", "scroll tooltip up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("]", "scroll tooltip down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the collapsed footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Touch, k.Aspects, k.Extended, k.Help, k.Quit}
}

// FullHelp returns the bindings shown when the footer is expanded.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Clear, k.ScrollUp, k.ScrollDown},
		{k.Aspects, k.Extended, k.Degrees, k.Table},
		{k.Touch, k.Glyphs, k.Reload},
		{k.Help, k.Quit},
	}
}
