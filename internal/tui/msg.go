package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/natal/internal/watch"
)

// MsgReloaded carries the outcome of one file change. Manual is set for
// reloads requested from the keyboard rather than the watcher.
type MsgReloaded struct {
	Result watch.Result
	Manual bool
}

// MsgWatchClosed is sent when the change channel closes.
type MsgWatchClosed struct{}

// waitForChange blocks on the next file change, applies it through the
// reloader and reports the result. The model re-issues it after every
// MsgReloaded so exactly one listener is active.
func waitForChange(r *watch.Reloader, ch <-chan watch.Change) tea.Cmd {
	if r == nil || ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return MsgWatchClosed{}
		}
		return MsgReloaded{Result: r.Handle(c)}
	}
}

// reloadNow re-reads the chart file on demand.
func reloadNow(r *watch.Reloader) tea.Cmd {
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		snap, err := r.LoadChart()
		return MsgReloaded{Result: watch.Result{Snapshot: snap, Err: err}, Manual: true}
	}
}
