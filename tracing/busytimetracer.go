package tracing

// BusyTimeTracer sums the ticks covered by completed tasks of interest.
// Tasks of one process never overlap, so plain summation is exact per
// process; across processes only burst tasks are mutually exclusive.
type BusyTimeTracer struct {
	filter   TaskFilter
	busyTime int
	perPID   map[int]int
}

// NewBusyTimeTracer creates a new BusyTimeTracer
func NewBusyTimeTracer(filter TaskFilter) *BusyTimeTracer {
	return &BusyTimeTracer{
		filter: filter,
		perPID: make(map[int]int),
	}
}

// BusyTime returns the total ticks spent on the selected tasks.
func (t *BusyTimeTracer) BusyTime() int {
	return t.busyTime
}

// BusyTimeOf returns the ticks one process spent on the selected tasks.
func (t *BusyTimeTracer) BusyTimeOf(pid int) int {
	return t.perPID[pid]
}

// StartTask does nothing.
func (t *BusyTimeTracer) StartTask(_ Task) {}

// EndTask accumulates the task duration.
func (t *BusyTimeTracer) EndTask(task Task) {
	if t.filter != nil && !t.filter(task) {
		return
	}

	t.busyTime += task.Duration()
	t.perPID[task.PID] += task.Duration()
}
