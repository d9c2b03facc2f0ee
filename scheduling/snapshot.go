package scheduling

import "github.com/sarchlab/rrsched/process"

// A Snapshot is a read-only copy of the scheduler state after a tick.
// Mutating a snapshot never affects the scheduler.
type Snapshot struct {
	Processes    []process.Process `json:"processes"`
	Running      *process.Process  `json:"running_process"`
	ReadyQueue   []int             `json:"ready_queue"`
	Clock        int               `json:"clock"`
	CPUBusyTicks int               `json:"cpu_busy_ticks"`
	Finished     []process.Process `json:"finished_processes"`
	Metrics      Metrics           `json:"metrics"`
	HasMetrics   bool              `json:"has_metrics"`
	History      History           `json:"state_history"`
}

// Process looks up a process by id.
func (s Snapshot) Process(id int) (process.Process, bool) {
	for _, p := range s.Processes {
		if p.ID == id {
			return p, true
		}
	}

	return process.Process{}, false
}

// Done tells if every process has finished.
func (s Snapshot) Done() bool {
	return len(s.Finished) >= len(s.Processes)
}

func copyProcesses(procs []*process.Process) []process.Process {
	out := make([]process.Process, len(procs))
	for i, p := range procs {
		out[i] = *p
	}

	return out
}
