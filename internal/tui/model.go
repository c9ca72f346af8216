package tui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/natal/internal/aspect"
	"github.com/papapumpkin/natal/internal/braille"
	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/hittest"
	"github.com/papapumpkin/natal/internal/logging"
	"github.com/papapumpkin/natal/internal/notation"
	"github.com/papapumpkin/natal/internal/telemetry"
	"github.com/papapumpkin/natal/internal/watch"
	"github.com/papapumpkin/natal/internal/wheel"
)

// Options wires the viewer to its chart source.
type Options struct {
	Store    *chart.Store
	Resolver *hittest.Resolver
	// Reloader and Changes are optional; without them the chart is static.
	Reloader *watch.Reloader
	Changes  <-chan watch.Change
	Events   *telemetry.Emitter
	Logger   logging.Logger
	// Title is shown in the status bar, usually the chart file name.
	Title string
	// ASCII replaces astrological symbols with two-letter abbreviations.
	ASCII bool
}

// pointer is the last cell the mouse or crosshair pointed at.
type pointer struct {
	col, row int
	valid    bool
}

// Model is the root bubbletea model: a braille wheel, a tooltip panel, a
// status bar and a help footer.
type Model struct {
	store    *chart.Store
	resolver *hittest.Resolver
	reloader *watch.Reloader
	changes  <-chan watch.Change
	events   *telemetry.Emitter
	log      logging.Logger

	Keys  KeyMap
	Help  help.Model
	Title string

	Width  int
	Height int

	frame    *braille.Frame
	frameGen uint64
	region   region
	ascii    bool

	input   hittest.Input
	pointer pointer
	cursor  bool // crosshair visible
	hit     hittest.Hit
	desc    hittest.Description
	tip     tooltip
	pinned  bool // selection survives pointer motion

	rejected error
	message  string
}

// NewModel creates the viewer model.
func NewModel(opts Options) Model {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = hittest.NewResolver(hittest.DefaultThresholds())
	}
	return Model{
		store:    opts.Store,
		resolver: resolver,
		reloader: opts.Reloader,
		changes:  opts.Changes,
		events:   opts.Events,
		log:      logging.OrNop(opts.Logger).Named("tui"),
		Keys:     DefaultKeyMap(),
		Help:     help.New(),
		Title:    opts.Title,
		ascii:    opts.ASCII,
		input:    hittest.Mouse,
		tip:      newTooltip(),
	}
}

// Init starts listening for file changes.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.reloader, m.changes)
}

// Update handles terminal events and reload results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.refresh(true)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case MsgReloaded:
		m.applyReload(msg.Result)
		if !msg.Manual {
			return m, waitForChange(m.reloader, m.changes)
		}

	case MsgWatchClosed:
		m.message = "file watcher stopped"
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.Keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.Keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.Keys.Select):
		if m.pointer.valid {
			m.selectAt(m.pointer.col, m.pointer.row)
		}
	case key.Matches(msg, m.Keys.Clear):
		m.clearHit()
		m.cursor = false
	case key.Matches(msg, m.Keys.Touch):
		if m.input == hittest.Touch {
			m.input = hittest.Mouse
		} else {
			m.input = hittest.Touch
		}
		m.message = "input: " + m.input.String()
		m.reresolve()
	case key.Matches(msg, m.Keys.Aspects):
		m.toggle(func(o *chart.Options) { o.ShowAspects = !o.ShowAspects })
	case key.Matches(msg, m.Keys.Extended):
		m.toggle(func(o *chart.Options) { o.ShowExtended = !o.ShowExtended })
	case key.Matches(msg, m.Keys.Degrees):
		m.toggle(func(o *chart.Options) { o.ShowDegreeMarkers = !o.ShowDegreeMarkers })
	case key.Matches(msg, m.Keys.Table):
		m.toggle(func(o *chart.Options) {
			if o.AspectTable == aspect.TableExtended {
				o.AspectTable = aspect.TableCanonical
			} else {
				o.AspectTable = aspect.TableExtended
			}
		})
	case key.Matches(msg, m.Keys.Glyphs):
		m.ascii = !m.ascii
		m.refresh(true)
	case key.Matches(msg, m.Keys.Reload):
		return m, reloadNow(m.reloader)
	case key.Matches(msg, m.Keys.ScrollUp):
		m.tip.scroll(-scrollStep)
	case key.Matches(msg, m.Keys.ScrollDown):
		m.tip.scroll(scrollStep)
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		m.refresh(true)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-m.region.Left, msg.Y-m.region.Top
	if !m.region.contains(msg.X, msg.Y) {
		if !m.pinned {
			m.clearHit()
		}
		return
	}
	m.cursor = false
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.selectAt(col, row)
	case msg.Action == tea.MouseActionMotion:
		m.pointer = pointer{col: col, row: row, valid: true}
		if !m.pinned {
			m.hoverAt(col, row)
		}
	}
}

func (m *Model) moveCursor(dc, dr int) {
	if m.frame == nil {
		return
	}
	if !m.pointer.valid {
		m.pointer = pointer{col: m.frame.Cols / 2, row: m.frame.Rows / 2, valid: true}
	} else {
		m.pointer.col = min(max(m.pointer.col+dc, 0), m.frame.Cols-1)
		m.pointer.row = min(max(m.pointer.row+dr, 0), m.frame.Rows-1)
	}
	m.cursor = true
	m.pinned = false
	m.hoverAt(m.pointer.col, m.pointer.row)
}

// resolve runs the hit-tester at the center of a wheel cell.
func (m *Model) resolve(col, row int) (hittest.Hit, *chart.Snapshot) {
	snap := m.store.Current()
	if snap == nil || m.frame == nil {
		return hittest.Hit{}, nil
	}
	return m.resolver.Resolve(snap, m.frame.ToChart(col, row), m.input), snap
}

func (m *Model) hoverAt(col, row int) {
	hit, snap := m.resolve(col, row)
	m.setHit(hit, snap)
}

func (m *Model) selectAt(col, row int) {
	m.pointer = pointer{col: col, row: row, valid: true}
	hit, snap := m.resolve(col, row)
	m.setHit(hit, snap)
	m.pinned = hit.Kind != hittest.None
	if !m.pinned || snap == nil {
		return
	}
	data := map[string]any{"kind": hit.Kind.String(), "input": m.input.String(), "distance": hit.Distance}
	if hit.Kind == hittest.Planet {
		data["name"] = hit.Position.Name
	} else {
		data["aspect"] = hit.Aspect.Type
		data["a"] = hit.Aspect.A
		data["b"] = hit.Aspect.B
	}
	m.events.Record(telemetry.KindHit, snap.Generation, data)
	m.log.Debug("hit selected", logging.String("title", m.desc.Title), logging.Float64("distance", hit.Distance))
}

func (m *Model) setHit(hit hittest.Hit, snap *chart.Snapshot) {
	m.hit = hit
	desc := hittest.Description{}
	if snap != nil {
		desc = hittest.Describe(hit, snap.Dictionary)
	}
	if desc.Title != m.desc.Title || !slices.Equal(desc.Lines, m.desc.Lines) {
		m.tip.set(desc)
	}
	m.desc = desc
}

func (m *Model) clearHit() {
	m.hit = hittest.Hit{}
	m.desc = hittest.Description{}
	m.tip.set(m.desc)
	m.pinned = false
}

// reresolve repeats the last resolution against the current snapshot so a
// tooltip never describes a previous generation.
func (m *Model) reresolve() {
	if !m.pointer.valid {
		m.clearHit()
		return
	}
	pinned := m.pinned
	m.hoverAt(m.pointer.col, m.pointer.row)
	m.pinned = pinned && m.hit.Kind != hittest.None
}

func (m *Model) toggle(change func(*chart.Options)) {
	opts := m.store.Options()
	change(&opts)
	if _, err := m.store.SetOptions(opts); err != nil {
		m.message = "options rejected: " + err.Error()
		return
	}
	m.message = fmt.Sprintf("aspects:%s extended:%s degrees:%s table:%s",
		onOff(opts.ShowAspects), onOff(opts.ShowExtended), onOff(opts.ShowDegreeMarkers), opts.AspectTable)
	m.refresh(false)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m *Model) applyReload(res watch.Result) {
	if res.Err != nil {
		m.rejected = res.Err
		m.message = ""
		return
	}
	m.rejected = nil
	m.message = ""
	m.refresh(false)
}

// refresh rebuilds the braille frame when the snapshot generation or the
// terminal geometry changed, then re-resolves the pointer.
func (m *Model) refresh(resized bool) {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	snap := m.store.Current()
	r := chartRegion(m.Width, m.Height, m.footerHeight())
	// Border top and bottom plus the title row.
	m.tip.setRows(r.Rows - 3)
	if snap == nil {
		m.frame = nil
		m.region = r
		return
	}
	if !resized && m.frame != nil && snap.Generation == m.frameGen && r == m.region {
		return
	}
	plan := wheel.Build(snap, TerminalStyle())
	m.frame = braille.Render(plan, r.Cols, r.Rows, braille.Options{Unicode: !m.ascii})
	m.frameGen = snap.Generation
	m.region = r
	if m.pointer.valid {
		m.pointer.col = min(m.pointer.col, r.Cols-1)
		m.pointer.row = min(m.pointer.row, r.Rows-1)
	}
	m.reresolve()
}

// footerHeight is the help footer's height including its top border.
func (m Model) footerHeight() int {
	if !m.Help.ShowAll {
		return footerRows
	}
	rows := 0
	for _, col := range m.Keys.FullHelp() {
		rows = max(rows, len(col))
	}
	return 1 + rows
}

// rejectSummary formats a rejected update for the status bar.
func rejectSummary(err error) string {
	var pe *notation.ParseError
	if errors.As(err, &pe) {
		if pe.Line > 0 {
			return fmt.Sprintf("rejected line %d: %s", pe.Line, pe.Rule)
		}
		return "rejected: " + string(pe.Rule)
	}
	return "rejected: " + err.Error()
}
