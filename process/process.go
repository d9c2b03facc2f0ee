// Package process defines the simulated process entity and the factory that
// creates processes.
package process

import "fmt"

// A Process is one simulated task. Only the scheduler that owns a Process
// mutates its state fields.
type Process struct {
	ID          int     `json:"id"`
	ArrivalTime int     `json:"arrival_time"`
	BurstTime   int     `json:"burst_time"`
	Priority    NullInt `json:"priority"`

	State         State   `json:"state"`
	RemainingTime int     `json:"remaining_time"`
	WaitTime      int     `json:"wait_time"`
	ResponseTime  NullInt `json:"response_time"`
	StartTime     NullInt `json:"start_time"`
	// CompletionTime is the tick boundary at which the process is gone.
	CompletionTime NullInt `json:"completion_time"`
}

// New creates a process with an explicit id.
func New(id, arrival, burst int) (*Process, error) {
	if err := validate(arrival, burst); err != nil {
		return nil, err
	}

	if id <= 0 {
		return nil, &ValidationError{
			Field:  "id",
			Value:  id,
			Reason: "must be positive",
		}
	}

	p := &Process{
		ID:            id,
		ArrivalTime:   arrival,
		BurstTime:     burst,
		State:         StateNew,
		RemainingTime: burst,
	}

	return p, nil
}

// NewWithPriority creates a process with an explicit id and a display
// priority.
func NewWithPriority(id, arrival, burst, priority int) (*Process, error) {
	p, err := New(id, arrival, burst)
	if err != nil {
		return nil, err
	}

	p.Priority = Some(priority)

	return p, nil
}

// TurnaroundTime is completion minus arrival. It is unset until the process
// finishes.
func (p Process) TurnaroundTime() NullInt {
	if !p.CompletionTime.Valid {
		return NullInt{}
	}

	return Some(p.CompletionTime.Value - p.ArrivalTime)
}

// Name returns the label used in histories and reports, e.g. "P3".
func (p Process) Name() string {
	return fmt.Sprintf("P%d", p.ID)
}

func (p Process) String() string {
	return fmt.Sprintf("%s (arrival %d, burst %d)",
		p.Name(), p.ArrivalTime, p.BurstTime)
}

// Clone returns an independent copy.
func (p *Process) Clone() *Process {
	if p == nil {
		return nil
	}

	c := *p

	return &c
}
