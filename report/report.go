// Package report turns the final state of a simulation into tabular
// artifacts: per-process rows, a time by process state matrix and the
// aggregate metrics.
package report

import (
	"fmt"

	"github.com/sarchlab/rrsched/process"
	"github.com/sarchlab/rrsched/scheduling"
)

// ProcessRow is one line of the process table.
type ProcessRow struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	ArrivalTime    int             `json:"arrival_time"`
	BurstTime      int             `json:"burst_time"`
	Priority       process.NullInt `json:"priority"`
	StartTime      process.NullInt `json:"start_time"`
	CompletionTime process.NullInt `json:"completion_time"`
	TurnaroundTime process.NullInt `json:"turnaround_time"`
	WaitTime       int             `json:"wait_time"`
}

// StateMatrix holds one row per tick and one column per process. Empty
// cells mean the process was not tracked at that tick.
type StateMatrix struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// A Report is the complete export of one simulation run.
type Report struct {
	Quantum    int                `json:"quantum"`
	Processes  []ProcessRow       `json:"processes"`
	States     StateMatrix        `json:"states"`
	Metrics    scheduling.Metrics `json:"metrics"`
	HasMetrics bool               `json:"has_metrics"`
}

// Build assembles a report from the final process list, the quantum, the
// metrics and the state history.
func Build(
	procs []process.Process,
	quantum int,
	metrics scheduling.Metrics,
	hasMetrics bool,
	history scheduling.History,
) Report {
	r := Report{
		Quantum:    quantum,
		Processes:  make([]ProcessRow, 0, len(procs)),
		Metrics:    metrics,
		HasMetrics: hasMetrics,
	}

	for _, p := range procs {
		r.Processes = append(r.Processes, ProcessRow{
			ID:             p.ID,
			Name:           p.Name(),
			ArrivalTime:    p.ArrivalTime,
			BurstTime:      p.BurstTime,
			Priority:       p.Priority,
			StartTime:      p.StartTime,
			CompletionTime: p.CompletionTime,
			TurnaroundTime: p.TurnaroundTime(),
			WaitTime:       p.WaitTime,
		})
	}

	r.States = buildStateMatrix(procs, history)

	return r
}

// FromSnapshot builds a report from a scheduler snapshot.
func FromSnapshot(s scheduling.Snapshot, quantum int) Report {
	return Build(s.Processes, quantum, s.Metrics, s.HasMetrics, s.History)
}

func buildStateMatrix(
	procs []process.Process,
	history scheduling.History,
) StateMatrix {
	m := StateMatrix{Columns: make([]string, len(procs))}
	for i, p := range procs {
		m.Columns[i] = p.Name()
	}

	for t := 0; t <= history.MaxTick(); t++ {
		row := make([]string, len(procs))
		for i, p := range procs {
			row[i] = history.At(t, p.ID)
		}

		m.Rows = append(m.Rows, row)
	}

	return m
}

// MetricLine is one formatted metric.
type MetricLine struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MetricLines formats the metrics the way the summary table shows them.
func (r Report) MetricLines() []MetricLine {
	lines := []MetricLine{
		{Name: "Quantum", Value: fmt.Sprint(r.Quantum)},
	}

	if !r.HasMetrics {
		return lines
	}

	m := r.Metrics

	return append(lines,
		MetricLine{"Total time", fmt.Sprint(m.TotalTime)},
		MetricLine{"CPU utilization", fmt.Sprintf("%.1f%%", m.CPUUtilization)},
		MetricLine{"Average wait time", fmt.Sprintf("%.1f", m.AvgWaitTime)},
		MetricLine{"Average turnaround time",
			fmt.Sprintf("%.1f", m.AvgTurnaroundTime)},
		MetricLine{"Finished processes",
			fmt.Sprintf("%d/%d", m.FinishedCount, m.TotalProcesses)},
	)
}
