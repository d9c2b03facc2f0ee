package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/rrsched/config"
	"github.com/sarchlab/rrsched/logging"
	"github.com/sarchlab/rrsched/report"
	"github.com/sarchlab/rrsched/scheduling"
	"github.com/sarchlab/rrsched/simulation"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a paced simulation and print the process table every tick.",
	Long: "`run` generates or loads a workload and advances the scheduler " +
		"once per interval. With --monitor the run can be paused, resumed " +
		"and single-stepped from the browser.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return simulate(cmd.Context(), cmd.OutOrStdout(), cfg, cfg.Interval,
			false)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	addWorkloadFlags(runCmd)
	flags := runCmd.Flags()
	flags.DurationP("interval", "i", config.DefaultInterval,
		"wall-clock time between ticks")
	flags.Bool("table", true, "print the process table after every tick")
	flags.Bool("monitor", false, "serve the monitoring dashboard")
	flags.Int("port", 0, "monitoring port, random if 0")
	flags.Bool("browser", false, "open the dashboard in a browser")
}

// simulate runs one simulation and writes every requested artifact. With
// finalTable the process table is printed once at the end.
func simulate(
	ctx context.Context,
	out io.Writer,
	c config.Config,
	interval time.Duration,
	finalTable bool,
) error {
	procs, err := c.Workload()
	if err != nil {
		return err
	}

	b := simulation.MakeBuilder().
		WithQuantum(c.Quantum).
		WithProcesses(procs...).
		WithInterval(interval).
		WithLogger(logger)

	if c.Output.Table {
		b = b.WithListener(report.NewTablePrinter(out))
	}

	if c.Recording() {
		b = b.WithRecording(c.Output.RecordPath)
	}

	if c.Output.TracePath != "" {
		b = b.WithTraceFile(c.Output.TracePath)
	}

	if c.Monitor.Enabled {
		b = b.WithMonitoring().WithMonitorPort(c.Monitor.Port)
		if c.Monitor.OpenBrowser {
			b = b.WithBrowser()
		}
	}

	sim, err := b.Build()
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := sim.Run(ctx)
	if runErr != nil {
		logger.Warn("simulation interrupted", logging.ErrAttr(runErr))
	}

	snap := sim.Runner().Snapshot()
	if finalTable {
		if err := report.PrintTable(out, snap); err != nil {
			_ = sim.Terminate()
			return err
		}
	}

	if err := export(out, c, sim.Report(), snap); err != nil {
		_ = sim.Terminate()
		return err
	}

	if err := sim.Terminate(); err != nil {
		return err
	}

	return runErr
}

func export(
	out io.Writer,
	c config.Config,
	r report.Report,
	s scheduling.Snapshot,
) error {
	if !s.Done() {
		fmt.Fprintln(out, "simulation did not finish")
	}

	for _, line := range r.MetricLines() {
		fmt.Fprintf(out, "%s: %s\n", line.Name, line.Value)
	}

	if c.Output.Gantt {
		fmt.Fprintln(out)
		if err := report.RenderGantt(out, s.Processes, s.History); err != nil {
			return err
		}
	}

	if c.Output.ReportDir != "" {
		if err := r.WriteCSVDir(c.Output.ReportDir); err != nil {
			return err
		}

		logger.Info("report written", slog.String("dir", c.Output.ReportDir))
	}

	if c.Output.JSONPath != "" {
		f, err := os.Create(c.Output.JSONPath)
		if err != nil {
			return err
		}

		err = r.WriteJSON(f)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}

		if err != nil {
			return err
		}

		logger.Info("report written", slog.String("file", c.Output.JSONPath))
	}

	return nil
}
