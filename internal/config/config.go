// Package config loads natal's runtime settings from .natal.yaml, NATAL_*
// environment variables and CLI flags through viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/papapumpkin/natal/internal/aspect"
	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/hittest"
	"github.com/papapumpkin/natal/internal/layout"
	"github.com/papapumpkin/natal/internal/logging"
)

// EnvPrefix is the prefix for environment overrides: chart.size is read
// from NATAL_CHART_SIZE.
const EnvPrefix = "NATAL"

// ChartConfig selects the chart size and aspect table.
type ChartConfig struct {
	Size    float64 `mapstructure:"size"`
	Preset  string  `mapstructure:"preset"`
	Aspects string  `mapstructure:"aspects"`
}

// DisplayConfig toggles optional layers.
type DisplayConfig struct {
	ShowExtended      bool `mapstructure:"show_extended"`
	ShowAspects       bool `mapstructure:"show_aspects"`
	ShowDegreeMarkers bool `mapstructure:"show_degree_markers"`
}

// InterpConfig points at a user interpretation dictionary.
type InterpConfig struct {
	Path string `mapstructure:"path"`
}

// WatchConfig tunes file watching.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// TelemetryConfig enables the JSONL event stream when Path is set.
type TelemetryConfig struct {
	Path string `mapstructure:"path"`
}

// Config holds all runtime configuration for a natal session.
// Values are populated from .natal.yaml, NATAL_* env vars, and CLI flags.
type Config struct {
	Chart     ChartConfig        `mapstructure:"chart"`
	Display   DisplayConfig      `mapstructure:"display"`
	Hit       hittest.Thresholds `mapstructure:"hit"`
	Interp    InterpConfig       `mapstructure:"interp"`
	Log       logging.Config     `mapstructure:"log"`
	Watch     WatchConfig        `mapstructure:"watch"`
	Telemetry TelemetryConfig    `mapstructure:"telemetry"`
	Verbose   bool               `mapstructure:"verbose"`
}

// BindEnv makes viper read NATAL_* variables, mapping nested keys with
// underscores.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. The result is
// validated before it is returned.
func Load() (Config, error) {
	hit := hittest.DefaultThresholds()

	viper.SetDefault("chart.size", 0)
	viper.SetDefault("chart.preset", layout.PresetDesktop)
	viper.SetDefault("chart.aspects", aspect.TableCanonical)
	viper.SetDefault("display.show_extended", true)
	viper.SetDefault("display.show_aspects", true)
	viper.SetDefault("display.show_degree_markers", true)
	viper.SetDefault("hit.planet_threshold", hit.Planet)
	viper.SetDefault("hit.touch_planet_threshold", hit.TouchPlanet)
	viper.SetDefault("hit.aspect_threshold", hit.Aspect)
	viper.SetDefault("hit.touch_aspect_threshold", hit.TouchAspect)
	viper.SetDefault("interp.path", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("watch.debounce", 100*time.Millisecond)
	viper.SetDefault("telemetry.path", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be repaired with a default.
func (c Config) Validate() error {
	if _, err := c.ChartOptions(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: log.format %q (want console or json)", c.Log.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("config: watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	for name, v := range map[string]float64{
		"hit.planet_threshold":       c.Hit.Planet,
		"hit.touch_planet_threshold": c.Hit.TouchPlanet,
		"hit.aspect_threshold":       c.Hit.Aspect,
		"hit.touch_aspect_threshold": c.Hit.TouchAspect,
	} {
		if v < 0 {
			return fmt.Errorf("config: %s must not be negative, got %g", name, v)
		}
	}
	return nil
}

// ChartOptions converts the chart and display sections into pipeline
// options. An explicit size wins over the preset.
func (c Config) ChartOptions() (chart.Options, error) {
	size := c.Chart.Size
	switch {
	case size < 0:
		return chart.Options{}, fmt.Errorf("config: chart.size must be positive, got %g", size)
	case size == 0:
		s, err := layout.PresetSize(c.Chart.Preset)
		if err != nil {
			return chart.Options{}, fmt.Errorf("config: chart.preset: %w", err)
		}
		size = s
	}
	if _, err := aspect.TableByName(c.Chart.Aspects); err != nil {
		return chart.Options{}, fmt.Errorf("config: chart.aspects: %w", err)
	}
	return chart.Options{
		AspectTable:       c.Chart.Aspects,
		Size:              size,
		ShowExtended:      c.Display.ShowExtended,
		ShowAspects:       c.Display.ShowAspects,
		ShowDegreeMarkers: c.Display.ShowDegreeMarkers,
	}, nil
}

// Logging returns the logger settings; Verbose forces debug level.
func (c Config) Logging() logging.Config {
	lc := c.Log
	if c.Verbose {
		lc.Level = "debug"
	}
	return lc
}
