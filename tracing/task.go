package tracing

// Task kinds produced from scheduler hooks.
const (
	KindBurst = "burst"
	KindWait  = "wait"
)

// A Task is a span of ticks a process spent in one place, either executing
// on the CPU or waiting in the ready queue. EndTime is exclusive.
type Task struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	What      string `json:"what"`
	Where     string `json:"where"`
	PID       int    `json:"pid"`
	StartTime int    `json:"start_time"`
	EndTime   int    `json:"end_time"`
}

// Duration is the number of ticks the task covers.
func (t Task) Duration() int {
	return t.EndTime - t.StartTime
}

// TaskFilter is a function that can filter interesting tasks. If this function
// returns true, the task is considered useful.
type TaskFilter func(t Task) bool

// KindIs returns a filter selecting tasks of one kind.
func KindIs(kind string) TaskFilter {
	return func(t Task) bool { return t.Kind == kind }
}
