package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/natal/internal/braille"
	"github.com/papapumpkin/natal/internal/chart"
	"github.com/papapumpkin/natal/internal/raster"
	"github.com/papapumpkin/natal/internal/scene"
	"github.com/papapumpkin/natal/internal/telemetry"
	"github.com/papapumpkin/natal/internal/wheel"
)

// Output formats for rendered charts.
const (
	formatPNG  = "png"
	formatSVG  = "svg"
	formatText = "txt"
)

// renderOptions control a single render.
type renderOptions struct {
	Format string
	Title  string
	Cols   int
	Rows   int
	ASCII  bool
}

var renderCmd = &cobra.Command{
	Use:   "render <chart>",
	Short: "Render the chart wheel as PNG, SVG or braille text",
	Long: `Renders the chart wheel. The format is taken from --format, then from the
extension of --output; without either, braille text is written to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	renderCmd.Flags().String("format", "", "output format: png, svg or txt")
	renderCmd.Flags().Int("cols", 80, "text width in terminal cells")
	renderCmd.Flags().Int("rows", 40, "text height in terminal cells")
	renderCmd.Flags().Bool("ascii", false, "use two-letter abbreviations instead of symbols in text output")
	addChartFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	ro, output, err := renderFlags(cmd)
	if err != nil {
		return err
	}
	ro.Title = filepath.Base(args[0])

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	snap, err := s.load(args[0])
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), output, snap, ro); err != nil {
		return err
	}
	s.events.Record(telemetry.KindRender, snap.Generation, map[string]string{"format": ro.Format, "output": output})
	if output != "" {
		printer(cmd.ErrOrStderr()).Rendered(output, ro.Format, snap.Generation)
	}
	return nil
}

// renderFlags reads the render flags shared by render and watch.
func renderFlags(cmd *cobra.Command) (renderOptions, string, error) {
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	cols, _ := cmd.Flags().GetInt("cols")
	rows, _ := cmd.Flags().GetInt("rows")
	ascii, _ := cmd.Flags().GetBool("ascii")

	resolved, err := resolveFormat(format, output)
	if err != nil {
		return renderOptions{}, "", err
	}
	if cols < 1 || rows < 1 {
		return renderOptions{}, "", fmt.Errorf("--cols and --rows must be positive, got %dx%d", cols, rows)
	}
	return renderOptions{Format: resolved, Cols: cols, Rows: rows, ASCII: ascii}, output, nil
}

// resolveFormat picks the output format from the flag, then the output
// file extension, falling back to text.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	switch format {
	case "", "text", formatText:
		return formatText, nil
	case formatPNG, formatSVG:
		return format, nil
	default:
		return "", fmt.Errorf("unknown render format %q (want png, svg or txt)", format)
	}
}

// render writes snap to w in the requested format.
func render(w io.Writer, snap *chart.Snapshot, ro renderOptions) error {
	plan := wheel.Build(snap, wheel.DefaultStyle())

	switch ro.Format {
	case formatPNG:
		return raster.Encode(w, plan)
	case formatSVG:
		return scene.Build(plan, ro.Title).WriteSVG(w)
	default:
		f := braille.Render(plan, ro.Cols, ro.Rows, braille.Options{Unicode: !ro.ASCII})
		_, err := fmt.Fprintln(w, f.String())
		return err
	}
}

// writeOutput renders to the named file, or to stdout when output is empty.
func writeOutput(stdout io.Writer, output string, snap *chart.Snapshot, ro renderOptions) error {
	if output == "" {
		return render(stdout, snap, ro)
	}
	var buf bytes.Buffer
	if err := render(&buf, snap, ro); err != nil {
		return fmt.Errorf("rendering %s: %w", output, err)
	}
	return writeFile(output, buf.Bytes())
}

// writeFile replaces path with data through a temporary file so readers
// never see a partial write.
func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
