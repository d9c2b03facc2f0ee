package report

import "github.com/sarchlab/rrsched/datarecording"

// Table names written by Record.
const (
	ProcessTable = "report_processes"
	StateTable   = "report_states"
	MetricTable  = "report_metrics"
)

type processEntry struct {
	PID            int
	Arrival        int
	Burst          int
	Priority       string
	StartTime      string
	CompletionTime string
	TurnaroundTime string
	WaitTime       int
}

type stateEntry struct {
	Tick    int
	Process string
	State   string
}

type metricEntry struct {
	Name  string
	Value string
}

// Record stores the report into three tables of a data recorder and flushes
// it.
func (r Report) Record(recorder datarecording.DataRecorder) {
	recorder.CreateTable(ProcessTable, processEntry{})
	recorder.CreateTable(StateTable, stateEntry{})
	recorder.CreateTable(MetricTable, metricEntry{})

	for _, p := range r.Processes {
		recorder.InsertData(ProcessTable, processEntry{
			PID:            p.ID,
			Arrival:        p.ArrivalTime,
			Burst:          p.BurstTime,
			Priority:       p.Priority.String(),
			StartTime:      p.StartTime.String(),
			CompletionTime: p.CompletionTime.String(),
			TurnaroundTime: p.TurnaroundTime.String(),
			WaitTime:       p.WaitTime,
		})
	}

	for t, row := range r.States.Rows {
		for i, code := range row {
			if code == "" {
				continue
			}

			recorder.InsertData(StateTable, stateEntry{
				Tick:    t,
				Process: r.States.Columns[i],
				State:   code,
			})
		}
	}

	for _, l := range r.MetricLines() {
		recorder.InsertData(MetricTable, metricEntry(l))
	}

	recorder.Flush()
}
