package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lifelegallysingle/prswarm/internal/report"
)

var evalFlags struct {
	pitchSummary string
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Compute send-readiness from a reviewed pitch summary",
	Long: `Evaluate a run after human review. Mark each row of pitch_summary.csv
in the manual_label column with 1 (send-ready) or 0 (needs work), then
run eval to get the send-ready ratio. Unlabeled rows are ignored.`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVar(&evalFlags.pitchSummary, "pitch-summary", "", "Path to the pitch_summary.csv produced by run (required)")
	_ = evalCmd.MarkFlagRequired("pitch-summary")
}

func runEval(cmd *cobra.Command, _ []string) error {
	f, err := os.Open(evalFlags.pitchSummary)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	s, err := report.EvaluateSendReadiness(f)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", evalFlags.pitchSummary, err)
	}
	if s.Labeled == 0 {
		cmd.Println("no manual labels found; fill in the manual_label column first")
		return nil
	}
	cmd.Printf("send-ready pitches: %d/%d (%.2f%%)\n", s.SendReady, s.Labeled, s.Ratio()*100)
	return nil
}
