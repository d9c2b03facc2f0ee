package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/rrsched/process"
	"github.com/sarchlab/rrsched/scheduling"
)

// TablePrinter is a scheduling listener that prints the process table and
// the metrics line after every tick.
type TablePrinter struct {
	w io.Writer
}

// NewTablePrinter creates a printer writing to w.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{w: w}
}

// Receive prints the snapshot.
func (p *TablePrinter) Receive(s scheduling.Snapshot) error {
	return PrintTable(p.w, s)
}

// PrintTable renders one snapshot as a text table.
func PrintTable(w io.Writer, s scheduling.Snapshot) error {
	running := "idle"
	if s.Running != nil {
		running = s.Running.Name()
	}

	fmt.Fprintf(w, "tick %d  running %s  ready %v\n",
		s.Clock, running, s.ReadyQueue)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tArrival\tBurst\tRemaining\tState\tWait\tTurnaround")

	for _, proc := range s.Processes {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%d\t%s\n",
			proc.Name(),
			proc.ArrivalTime,
			proc.BurstTime,
			proc.RemainingTime,
			proc.State,
			proc.WaitTime,
			proc.TurnaroundTime(),
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if s.HasMetrics {
		m := s.Metrics
		fmt.Fprintf(w,
			"total time %d  cpu %.1f%%  avg wait %.1f  avg turnaround %.1f\n",
			m.TotalTime, m.CPUUtilization, m.AvgWaitTime, m.AvgTurnaroundTime)
	}

	_, err := fmt.Fprintln(w)

	return err
}

// RenderGantt draws one row per process and one column per tick. Running
// ticks are '#', ready ticks '.', finished ticks ' ' and untracked ticks ' '.
func RenderGantt(
	w io.Writer,
	procs []process.Process,
	history scheduling.History,
) error {
	last := history.MaxTick()

	for _, p := range procs {
		line := make([]byte, last+1)
		for t := 0; t <= last; t++ {
			switch history.At(t, p.ID) {
			case "E":
				line[t] = '#'
			case "L":
				line[t] = '.'
			default:
				line[t] = ' '
			}
		}

		if _, err := fmt.Fprintf(w, "%-4s|%s|\n", p.Name(), line); err != nil {
			return err
		}
	}

	return nil
}

var _ scheduling.Listener = (*TablePrinter)(nil)
