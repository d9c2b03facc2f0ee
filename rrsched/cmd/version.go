package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at link time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rrsched version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rrsched %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
