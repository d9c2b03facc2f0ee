package tracing

// TaskCollector keeps every completed task in memory.
type TaskCollector struct {
	filter TaskFilter
	tasks  []Task
}

// NewTaskCollector creates a collector. A nil filter keeps every task.
func NewTaskCollector(filter TaskFilter) *TaskCollector {
	return &TaskCollector{filter: filter}
}

// StartTask does nothing; tasks are kept when they end.
func (c *TaskCollector) StartTask(_ Task) {}

// EndTask keeps the task if it passes the filter.
func (c *TaskCollector) EndTask(task Task) {
	if c.filter != nil && !c.filter(task) {
		return
	}

	c.tasks = append(c.tasks, task)
}

// Tasks returns the collected tasks in completion order.
func (c *TaskCollector) Tasks() []Task {
	out := make([]Task, len(c.tasks))
	copy(out, c.tasks)

	return out
}
