package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/natal/internal/logging"
	"github.com/papapumpkin/natal/internal/telemetry"
	"github.com/papapumpkin/natal/internal/ui"
	"github.com/papapumpkin/natal/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <chart>",
	Short: "Re-render the chart to a file whenever it changes",
	Long: `Renders the chart to --output and re-renders it every time the chart or
interpretation file changes. A rejected edit leaves the last good render in
place and is reported on the status line. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("output", "o", "", "output file, required (format from extension)")
	watchCmd.Flags().String("format", "", "output format: png, svg or txt")
	watchCmd.Flags().Int("cols", 80, "text width in terminal cells")
	watchCmd.Flags().Int("rows", 40, "text height in terminal cells")
	watchCmd.Flags().Bool("ascii", false, "use two-letter abbreviations instead of symbols in text output")
	addChartFlags(watchCmd)
	_ = watchCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ro, output, err := renderFlags(cmd)
	if err != nil {
		return err
	}
	if output == "" {
		return errors.New("watch needs --output")
	}
	ro.Title = filepath.Base(args[0])

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	r := s.reloader(args[0])
	w, err := watch.NewWatcher(s.cfg.Watch.Debounce, r.Files()...)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	err = watchLoop(ctx, s, r, w.Changes, output, ro, printer(cmd.ErrOrStderr()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchLoop renders once, then again after every accepted change until ctx
// is done or changes closes.
func watchLoop(ctx context.Context, s *session, r *watch.Reloader, changes <-chan watch.Change, output string, ro renderOptions, status *ui.Printer) error {
	defer status.StatusDone()

	emit := func() {
		snap, err := s.store.Require()
		if err != nil {
			s.log.Debug("nothing to render", logging.Err(err))
			return
		}
		if err := writeOutput(nil, output, snap, ro); err != nil {
			s.log.Error("render failed", logging.String("output", output), logging.Err(err))
			status.Status(snap, err)
			return
		}
		s.events.Record(telemetry.KindRender, snap.Generation, map[string]string{"format": ro.Format, "output": output})
	}

	_, loadErr := r.LoadChart()
	emit()
	status.Status(s.store.Current(), loadErr)

	return r.Run(ctx, changes, func(res watch.Result) {
		if res.Err == nil {
			emit()
		}
		status.Status(s.store.Current(), res.Err)
	})
}
