package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/natal/internal/logging"
	"github.com/papapumpkin/natal/internal/tui"
	"github.com/papapumpkin/natal/internal/watch"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <chart>",
	Short: "Open the interactive chart viewer",
	Long: `Opens a braille chart wheel in the terminal. Hover or move the crosshair
over a glyph or aspect line to see its interpretation; click or press enter
to pin it. The chart and interpretation files are reloaded when they change;
an invalid edit keeps the last good chart on screen.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationFullscreen: "true"},
	RunE:        runTUI,
}

func init() {
	tuiCmd.Flags().Bool("ascii", false, "use two-letter abbreviations instead of symbols")
	tuiCmd.Flags().Bool("no-watch", false, "do not reload files when they change")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ascii, _ := cmd.Flags().GetBool("ascii")
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	chartPath := args[0]

	if _, err := os.Stat(chartPath); err != nil {
		return fmt.Errorf("chart %s: %w", chartPath, err)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	r := s.reloader(chartPath)
	// A rejected chart still opens the viewer; it waits for a valid edit.
	if _, err := r.LoadChart(); err != nil && errors.Is(err, os.ErrNotExist) {
		return err
	}

	opts := tui.Options{
		Store:    s.store,
		Resolver: s.resolver,
		Reloader: r,
		Events:   s.events,
		Logger:   s.log,
		Title:    filepath.Base(chartPath),
		ASCII:    ascii,
	}
	if !noWatch {
		w, err := watch.NewWatcher(s.cfg.Watch.Debounce, r.Files()...)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		opts.Changes = w.Changes
		s.log.Debug("watching", logging.Any("files", r.Files()))
	}
	return tui.Run(opts)
}
