package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/natal/internal/chart"
)

var validateCmd = &cobra.Command{
	Use:   "validate <chart>...",
	Short: "Check chart files without rendering them",
	Long: `Parses each chart file and reports the first violated rule with its line.
Exits non-zero if any file is rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	p := printer(cmd.OutOrStdout())
	opts := s.store.Options()
	failed := 0
	for _, path := range args {
		snap, err := validateFile(path, s, opts)
		p.ValidateResult(path, snap, err)
		if err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d charts rejected", failed, len(args))
	}
	return nil
}

// validateFile builds one chart without publishing it to the store.
func validateFile(path string, s *session, opts chart.Options) (*chart.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return chart.Build(string(raw), s.dict, opts)
}
