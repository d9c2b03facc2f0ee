package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sarchlab/rrsched/datarecording"
	"github.com/sarchlab/rrsched/process"
	"github.com/sarchlab/rrsched/report"
	"github.com/sarchlab/rrsched/scheduling"
)

var replayCmd = &cobra.Command{
	Use:   "replay <recording.sqlite3>",
	Short: "Print the ticks stored in a recording.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		ticks, err := datarecording.ReadTicks(ctx, reader)
		if err != nil {
			return err
		}

		for _, t := range ticks {
			running := "idle"
			if t.RunningPID != 0 {
				running = fmt.Sprintf("P%d", t.RunningPID)
			}

			fmt.Fprintf(out, "tick %d  running %s  ready [%s]  cpu %.1f%%\n",
				t.Tick, running, t.ReadyQueue, t.CPUUtilization)
		}

		states, err := datarecording.ReadTickStates(ctx, reader, 0, -1)
		if err != nil {
			return err
		}

		history := scheduling.History{}
		seen := map[int]bool{}
		var procs []process.Process
		for _, s := range states {
			if history[s.Tick] == nil {
				history[s.Tick] = map[int]string{}
			}
			history[s.Tick][s.PID] = s.State

			if !seen[s.PID] {
				seen[s.PID] = true
				procs = append(procs, process.Process{ID: s.PID})
			}
		}

		sort.Slice(procs, func(i, j int) bool { return procs[i].ID < procs[j].ID })

		fmt.Fprintln(out)

		return report.RenderGantt(out, procs, history)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
