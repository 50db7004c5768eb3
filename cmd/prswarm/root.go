package main

import (
	"fmt"
	"os"

	"github.com/lifelegallysingle/prswarm/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prswarm",
	Short: "Anchored PR pitch drafting for journalist prospects",
	Long: "prswarm turns a CSV of journalist prospects into personalized outreach\n" +
		"drafts, but only when each draft can be anchored to the journalist's\n" +
		"most recent real published piece. No verified article, no pitch.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.Version = version.Current
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
