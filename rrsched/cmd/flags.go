package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sarchlab/rrsched/config"
)

// addWorkloadFlags registers the flags shared by commands that simulate.
func addWorkloadFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntP("quantum", "q", config.DefaultQuantum, "time quantum in ticks")
	flags.IntP("processes", "n", config.DefaultNumProcesses,
		"number of random processes")
	flags.Int("arrival-max", 0, "largest random arrival tick")
	flags.Int("burst-max", 0, "largest random burst")
	flags.Int64("seed", 0, "random seed, 0 for a time-based seed")
	flags.String("report-dir", "", "directory receiving the CSV report")
	flags.String("json", "", "file receiving the JSON report")
	flags.String("record", "", "record every tick into <path>.sqlite3")
	flags.String("trace", "", "write process spans into <path>.csv")
	flags.Bool("gantt", false, "print a Gantt chart at the end")
}

// applyFlags overlays the flags the user set onto c. Defaults of unset flags
// never override the file or the environment.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	var err error

	cmd.Flags().Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}

		err = applyFlag(cmd.Flags(), f.Name, c)
	})

	return err
}

func applyFlag(flags *pflag.FlagSet, name string, c *config.Config) error {
	var err error

	switch name {
	case "log-level":
		c.Log.Level, err = flags.GetString(name)
	case "log-format":
		c.Log.Format, err = flags.GetString(name)
	case "quantum":
		c.Quantum, err = flags.GetInt(name)
	case "processes":
		c.NumProcesses, err = flags.GetInt(name)
	case "arrival-max":
		c.ArrivalRange.Max, err = flags.GetInt(name)
	case "burst-max":
		c.BurstRange.Max, err = flags.GetInt(name)
	case "seed":
		c.Seed, err = flags.GetInt64(name)
	case "interval":
		c.Interval, err = flags.GetDuration(name)
	case "report-dir":
		c.Output.ReportDir, err = flags.GetString(name)
	case "json":
		c.Output.JSONPath, err = flags.GetString(name)
	case "record":
		c.Output.Record = true
		c.Output.RecordPath, err = flags.GetString(name)
	case "trace":
		c.Output.TracePath, err = flags.GetString(name)
	case "gantt":
		c.Output.Gantt, err = flags.GetBool(name)
	case "table":
		c.Output.Table, err = flags.GetBool(name)
	case "monitor":
		c.Monitor.Enabled, err = flags.GetBool(name)
	case "port":
		c.Monitor.Enabled = true
		c.Monitor.Port, err = flags.GetInt(name)
	case "browser":
		c.Monitor.Enabled = true
		c.Monitor.OpenBrowser, err = flags.GetBool(name)
	}

	return err
}
