package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <chart>",
	Short: "Print positions, houses, aspects and the aspect grid",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Bool("grid", false, "print only the aspect grid")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	gridOnly, _ := cmd.Flags().GetBool("grid")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	snap, err := s.load(args[0])
	if err != nil {
		return err
	}
	p := printer(cmd.OutOrStdout())
	if gridOnly {
		p.Grid(snap)
		return nil
	}
	p.Report(snap)
	return nil
}
