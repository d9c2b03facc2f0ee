package scheduling

import "github.com/sarchlab/rrsched/process"

// Metrics are aggregate statistics over the finished processes.
type Metrics struct {
	TotalTime         int     `json:"total_time"`
	CPUUtilization    float64 `json:"cpu_utilization"`
	AvgWaitTime       float64 `json:"avg_wait_time"`
	AvgTurnaroundTime float64 `json:"avg_turnaround_time"`
	TotalProcesses    int     `json:"total_processes"`
	FinishedCount     int     `json:"finished_count"`
}

// CPUUtilization is the percentage of elapsed ticks the CPU executed work.
func CPUUtilization(busyTicks, clock int) float64 {
	if clock <= 0 {
		return 0
	}

	return float64(busyTicks) / float64(clock) * 100
}

func computeMetrics(
	finished []*process.Process,
	clock, busyTicks, total int,
) (Metrics, bool) {
	if len(finished) == 0 {
		return Metrics{}, false
	}

	waitSum, turnaroundSum := 0, 0
	for _, p := range finished {
		waitSum += p.WaitTime
		turnaroundSum += p.TurnaroundTime().Value
	}

	n := float64(len(finished))
	m := Metrics{
		TotalTime:         clock,
		CPUUtilization:    CPUUtilization(busyTicks, clock),
		AvgWaitTime:       float64(waitSum) / n,
		AvgTurnaroundTime: float64(turnaroundSum) / n,
		TotalProcesses:    total,
		FinishedCount:     len(finished),
	}

	return m, true
}
