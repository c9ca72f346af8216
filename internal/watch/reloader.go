package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/interp"
	"github.com/papapumpkin/natal/internal/logging"
	"github.com/papapumpkin/natal/internal/notation"
	"github.com/papapumpkin/natal/internal/telemetry"
)

// Result reports the outcome of handling one change.
type Result struct {
	Change   Change
	Snapshot *chart.Snapshot // nil when the change was rejected or ignored
	Err      error
}

// Reloader applies file changes to a chart store. A rejected chart leaves
// the store's current generation in place.
type Reloader struct {
	store      *chart.Store
	chartPath  string
	interpPath string
	log        logging.Logger
	events     *telemetry.Emitter
}

// NewReloader creates a reloader for the chart file and an optional
// interpretation file. events may be nil.
func NewReloader(store *chart.Store, chartPath, interpPath string, logger logging.Logger, events *telemetry.Emitter) *Reloader {
	abs := func(p string) string {
		if p == "" {
			return ""
		}
		if a, err := filepath.Abs(p); err == nil {
			return a
		}
		return p
	}
	return &Reloader{
		store:      store,
		chartPath:  abs(chartPath),
		interpPath: abs(interpPath),
		log:        logging.OrNop(logger).Named("watch"),
		events:     events,
	}
}

// Files returns the paths the reloader reacts to.
func (r *Reloader) Files() []string {
	if r.interpPath == "" {
		return []string{r.chartPath}
	}
	return []string{r.chartPath, r.interpPath}
}

// LoadChart reads the chart file and updates the store.
func (r *Reloader) LoadChart() (*chart.Snapshot, error) {
	raw, err := os.ReadFile(r.chartPath)
	if err != nil {
		return nil, fmt.Errorf("reading chart %s: %w", r.chartPath, err)
	}
	snap, err := r.store.Update(string(raw))
	if err != nil {
		r.reject(err)
		return nil, err
	}
	r.log.Info("chart loaded",
		logging.String("path", r.chartPath),
		logging.Uint64("generation", snap.Generation),
		logging.Int("bodies", len(snap.Positions)),
		logging.Int("aspects", len(snap.Aspects)),
	)
	r.events.Record(telemetry.KindChartLoaded, snap.Generation, map[string]int{
		"bodies":  len(snap.Positions),
		"aspects": len(snap.Aspects),
	})
	return snap, nil
}

// LoadDictionary reads the interpretation file, layers it over the built-in
// dictionary and republishes the chart with it.
func (r *Reloader) LoadDictionary() (*chart.Snapshot, error) {
	dict, err := interp.LoadOrDefault(r.interpPath)
	if err != nil {
		r.log.Warn("dictionary rejected", logging.String("path", r.interpPath), logging.Err(err))
		return nil, err
	}
	snap, err := r.store.SetDictionary(dict)
	if err != nil {
		return nil, err
	}
	var gen uint64
	if snap != nil {
		gen = snap.Generation
	}
	r.log.Info("dictionary loaded", logging.String("path", r.interpPath))
	r.events.Record(telemetry.KindDictionaryLoad, gen, map[string]string{"path": r.interpPath})
	return snap, nil
}

// Handle applies one change. Removal of the chart file is reported as an
// error and keeps the current chart; removal of the dictionary falls back to
// the built-in text.
func (r *Reloader) Handle(c Change) Result {
	res := Result{Change: c}
	switch c.File {
	case r.chartPath:
		if c.Kind == ChangeRemoved {
			res.Err = fmt.Errorf("chart %s removed: %w", c.File, os.ErrNotExist)
			r.log.Warn("chart file removed; keeping current chart", logging.String("path", c.File))
			return res
		}
		res.Snapshot, res.Err = r.LoadChart()
	case r.interpPath:
		if c.Kind == ChangeRemoved {
			res.Snapshot, res.Err = r.store.SetDictionary(interp.Default())
			return res
		}
		res.Snapshot, res.Err = r.LoadDictionary()
	}
	return res
}

// Run applies changes from ch until ctx is done or ch closes, calling
// onResult after each one. It returns ctx.Err() on cancellation and nil
// when the channel closes.
func (r *Reloader) Run(ctx context.Context, ch <-chan Change, onResult func(Result)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-ch:
			if !ok {
				return nil
			}
			res := r.Handle(c)
			if onResult != nil {
				onResult(res)
			}
		}
	}
}

func (r *Reloader) reject(err error) {
	fields := []logging.Field{logging.String("path", r.chartPath), logging.Err(err)}
	data := map[string]any{"error": err.Error()}
	var pe *notation.ParseError
	if errors.As(err, &pe) {
		fields = append(fields, logging.String("rule", string(pe.Rule)), logging.Int("line", pe.Line))
		data["rule"] = string(pe.Rule)
		data["line"] = pe.Line
	}
	r.log.Warn("chart rejected; keeping previous generation", fields...)
	var gen uint64
	if cur := r.store.Current(); cur != nil {
		gen = cur.Generation
	}
	r.events.Record(telemetry.KindChartRejected, gen, data)
}
