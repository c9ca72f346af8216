package cmd

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/hittest"
	"github.com/papapumpkin/natal/internal/telemetry"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <chart>",
	Short: "Resolve a canvas point to the tooltip a pointer there would show",
	Long: `Hit-tests one point in canvas pixels (origin top-left) and prints the
tooltip. --body points at a placed glyph instead of a coordinate.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Float64("x", 0, "canvas x in pixels")
	inspectCmd.Flags().Float64("y", 0, "canvas y in pixels")
	inspectCmd.Flags().String("body", "", "point at this body's glyph, e.g. Sun or ASC")
	inspectCmd.Flags().Bool("touch", false, "use the wider touch thresholds")
	addChartFlags(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	body, _ := cmd.Flags().GetString("body")
	touch, _ := cmd.Flags().GetBool("touch")
	if body == "" && !cmd.Flags().Changed("x") && !cmd.Flags().Changed("y") {
		return errors.New("inspect needs --x and --y, or --body")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	snap, err := s.load(args[0])
	if err != nil {
		return err
	}

	var pt r2.Point
	if body != "" {
		if pt, err = glyphPoint(snap, body); err != nil {
			return err
		}
	} else {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		pt = r2.Point{X: x, Y: y}
	}

	input := hittest.Mouse
	if touch {
		input = hittest.Touch
	}
	hit := s.resolver.Resolve(snap, pt, input)
	s.events.Record(telemetry.KindHit, snap.Generation, map[string]any{
		"x": pt.X, "y": pt.Y, "input": input.String(), "kind": hit.Kind.String(),
	})
	printer(cmd.OutOrStdout()).Tooltip(hittest.Describe(hit, snap.Dictionary))
	return nil
}

// glyphPoint returns the canvas point of a body's placed glyph.
func glyphPoint(snap *chart.Snapshot, name string) (r2.Point, error) {
	g, ok := snap.Layout.Glyph(name)
	if !ok {
		return r2.Point{}, fmt.Errorf("no glyph for %q in this chart", name)
	}
	return snap.Geometry.ToCanvas(g.Point), nil
}
