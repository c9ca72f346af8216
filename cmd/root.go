package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/natal/internal/config"
	"github.com/papapumpkin/natal/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "natal",
	Short: "Natal chart geometry and interaction engine",
	Long: `Natal parses a chart in positional notation, derives houses and aspects,
lays out the wheel and renders it as PNG, SVG or braille text. The tui
command opens an interactive viewer with hover tooltips and live reload.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .natal.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.String("interp", "", "interpretation file (toml, yaml or json) layered over the built-in text")
	pf.String("aspects", "", "aspect table: canonical or extended")
	pf.String("events", "", "append JSONL session events to this file")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("interp.path", pf.Lookup("interp"))
	_ = viper.BindPFlag("chart.aspects", pf.Lookup("aspects"))
	_ = viper.BindPFlag("telemetry.path", pf.Lookup("events"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".natal")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// isTerminal reports whether w is a terminal, which decides if output is
// colored.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// printer returns a ui.Printer for w, colored only on a terminal.
func printer(w io.Writer) *ui.Printer {
	return ui.NewWriter(w, isTerminal(w))
}
