package scheduling

import (
	"log/slog"

	"github.com/sarchlab/rrsched/process"
)

// DefaultQuantum is the quantum used when none is configured.
const DefaultQuantum = 2

// RoundRobin serves ready processes in FIFO order and preempts the running
// process whenever the tick after the current one is a multiple of the
// quantum.
type RoundRobin struct {
	*bookkeeper

	quantum int
}

// NewRoundRobin creates a Round-Robin scheduler with the given quantum.
func NewRoundRobin(quantum int) (*RoundRobin, error) {
	return MakeBuilder().WithQuantum(quantum).Build()
}

// Quantum returns the configured quantum.
func (s *RoundRobin) Quantum() int {
	return s.quantum
}

// Step performs one tick. Calling Step after it returned false is a no-op
// that returns false again; the clock stays put and no snapshot is pushed.
func (s *RoundRobin) Step() bool {
	if s.done {
		return false
	}

	s.admitAndChargeWait()

	if s.running == nil {
		if len(s.readyQueue) == 0 {
			return s.endTick()
		}

		s.dispatch()
	}

	s.execute()
	s.preemptOrFinish()

	return s.endTick()
}

// admitAndChargeWait scans processes in insertion order. A process admitted
// in this pass is charged one wait tick right away, even if it is dispatched
// later in the same tick.
func (s *RoundRobin) admitAndChargeWait() {
	s.history.open(s.clock)

	for _, p := range s.processes {
		if p.State == process.StateNew && p.ArrivalTime <= s.clock {
			s.transition(p, process.StateReady)
			s.enqueue(p)

			if !p.ResponseTime.Valid {
				p.ResponseTime = process.Some(s.clock - p.ArrivalTime)
			}

			s.invokeProcessHook(HookPosProcessAdmitted, p)
		}

		if p.State == process.StateReady {
			p.WaitTime++
		}

		s.recordState(p)
	}
}

func (s *RoundRobin) dispatch() {
	p := s.dequeue()
	s.transition(p, process.StateRunning)

	if !p.StartTime.Valid {
		p.StartTime = process.Some(s.clock)
	}

	s.running = p
	s.invokeProcessHook(HookPosProcessDispatched, p)
}

func (s *RoundRobin) execute() {
	s.running.RemainingTime--
	s.cpuBusyTicks++
	s.recordState(s.running)
}

func (s *RoundRobin) preemptOrFinish() {
	p := s.running

	switch {
	case p.RemainingTime == 0:
		s.transition(p, process.StateFinished)
		p.CompletionTime = process.Some(s.clock + 1)
		s.finished = append(s.finished, p)
		s.running = nil

		s.logger.Debug("process finished",
			slog.Int("pid", p.ID),
			slog.Int("completion_time", p.CompletionTime.Value))
		s.invokeProcessHook(HookPosProcessFinished, p)
	case (s.clock+1)%s.quantum == 0:
		s.transition(p, process.StateReady)
		s.enqueue(p)
		s.running = nil

		s.invokeProcessHook(HookPosProcessPreempted, p)
	}
}

var _ Scheduler = (*RoundRobin)(nil)
