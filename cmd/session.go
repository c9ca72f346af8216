package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/config"
	"github.com/papapumpkin/natal/internal/hittest"
	"github.com/papapumpkin/natal/internal/interp"
	"github.com/papapumpkin/natal/internal/layout"
	"github.com/papapumpkin/natal/internal/logging"
	"github.com/papapumpkin/natal/internal/telemetry"
	"github.com/papapumpkin/natal/internal/watch"
)

// session bundles the pieces every chart command needs: resolved config, a
// logger, the optional event stream and a store seeded with the dictionary.
type session struct {
	cfg      config.Config
	log      logging.Logger
	events   *telemetry.Emitter
	dict     *interp.Dictionary
	store    *chart.Store
	resolver *hittest.Resolver
}

// addChartFlags registers the flags that override the chart section of the
// config for one command.
func addChartFlags(c *cobra.Command) {
	c.Flags().Float64("size", 0, "chart edge length in pixels (overrides --preset)")
	c.Flags().String("preset", "", fmt.Sprintf("size preset: %s, %s or %s", layout.PresetDesktop, layout.PresetTablet, layout.PresetMobile))
}

// applyChartFlags copies changed chart flags into cfg. A preset given on the
// command line clears a configured size so the preset takes effect.
func applyChartFlags(c *cobra.Command, cfg *config.Config) {
	if f := c.Flags().Lookup("preset"); f != nil && f.Changed {
		cfg.Chart.Preset = f.Value.String()
		cfg.Chart.Size = 0
	}
	if f := c.Flags().Lookup("size"); f != nil && f.Changed {
		cfg.Chart.Size, _ = c.Flags().GetFloat64("size")
	}
}

// annotationFullscreen marks commands that own the terminal. Their logs are
// dropped unless log.output_paths names a destination.
const annotationFullscreen = "fullscreen"

func newLogger(c *cobra.Command, cfg config.Config) (logging.Logger, error) {
	if c.Annotations[annotationFullscreen] == "true" && len(cfg.Log.OutputPaths) == 0 {
		return logging.NewNopLogger(), nil
	}
	return logging.NewLogger(cfg.Logging())
}

// openSession loads config and builds the store for command c.
func openSession(c *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyChartFlags(c, &cfg)
	opts, err := cfg.ChartOptions()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(c, cfg)
	if err != nil {
		return nil, err
	}

	dict, err := interp.LoadOrDefault(cfg.Interp.Path)
	if err != nil {
		return nil, fmt.Errorf("loading interpretations: %w", err)
	}

	var events *telemetry.Emitter
	if cfg.Telemetry.Path != "" {
		events, err = telemetry.NewEmitter(cfg.Telemetry.Path)
		if err != nil {
			return nil, err
		}
	}
	events.Record(telemetry.KindSessionStart, 0, map[string]string{"command": c.Name()})

	return &session{
		cfg:      cfg,
		log:      logger.Named(c.Name()),
		events:   events,
		dict:     dict,
		store:    chart.NewStore(opts, dict, logger),
		resolver: hittest.NewResolver(cfg.Hit),
	}, nil
}

// reloader returns a reloader bound to the chart file and the configured
// interpretation file.
func (s *session) reloader(chartPath string) *watch.Reloader {
	return watch.NewReloader(s.store, chartPath, s.cfg.Interp.Path, s.log, s.events)
}

// load reads the chart file into the store.
func (s *session) load(chartPath string) (*chart.Snapshot, error) {
	return s.reloader(chartPath).LoadChart()
}

// close ends the event stream and flushes the logger.
func (s *session) close() {
	var gen uint64
	if snap := s.store.Current(); snap != nil {
		gen = snap.Generation
	}
	s.events.Record(telemetry.KindSessionEnd, gen, nil)
	_ = s.events.Close()
	_ = s.log.Sync()
}
