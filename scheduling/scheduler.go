// Package scheduling implements the tick-driven CPU scheduling engine.
//
// A Scheduler owns a fixed set of processes and advances a logical clock by
// one tick per Step call. After every tick it pushes a Snapshot to its
// listeners and raises hooks for tracers.
package scheduling

import (
	"github.com/sarchlab/rrsched/hooking"
	"github.com/sarchlab/rrsched/process"
)

// A Scheduler advances a simulated CPU one tick at a time.
type Scheduler interface {
	hooking.Hookable

	// AddProcess hands a process to the scheduler. The scheduler keeps its
	// own copy.
	AddProcess(p *process.Process) error

	// AddListener registers a snapshot receiver. Registration order is
	// notification order.
	AddListener(l Listener)

	// Step performs one tick and tells if more ticks are meaningful.
	Step() bool

	// Metrics returns aggregate statistics. The second return value is false
	// while no process has finished.
	Metrics() (Metrics, bool)

	// Snapshot returns a copy of the current state.
	Snapshot() Snapshot
}

// A Listener receives a snapshot after every tick.
type Listener interface {
	Receive(s Snapshot) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(s Snapshot) error

// Receive calls f.
func (f ListenerFunc) Receive(s Snapshot) error {
	return f(s)
}
