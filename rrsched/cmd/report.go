package cmd

import (
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Simulate without pacing and export the final report.",
	Long: "`report` runs the whole workload at once, prints the final " +
		"process table and metrics, and writes the CSV, JSON and SQLite " +
		"artifacts that were requested.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c := cfg
		c.Output.Table = false
		c.Monitor.Enabled = false

		return simulate(cmd.Context(), cmd.OutOrStdout(), c, 0, true)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	addWorkloadFlags(reportCmd)
}
