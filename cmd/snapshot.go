package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/natal/internal/export"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <chart>",
	Short: "Print the computed chart as JSON, TOML, YAML or chart records",
	Long: `Runs the full pipeline and writes the snapshot: positions with visual
degrees and houses, cusps, aspects and glyph placement. --format chart
prints the normalized input records instead, without derived axes.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringP("format", "f", "json", "encoding: json, toml, yaml or chart")
	snapshotCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	addChartFlags(snapshotCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
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
	if output == "" {
		return export.Encode(cmd.OutOrStdout(), snap, format)
	}
	data, err := export.Marshal(snap, format)
	if err != nil {
		return err
	}
	if err := writeFile(output, data); err != nil {
		return err
	}
	printer(cmd.ErrOrStderr()).Rendered(output, string(format), snap.Generation)
	return nil
}
