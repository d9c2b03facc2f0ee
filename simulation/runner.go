package simulation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sarchlab/rrsched/logging"
	"github.com/sarchlab/rrsched/scheduling"
)

// State is the lifecycle state of a Runner.
type State int

// Runner states.
const (
	Stopped State = iota
	Running
	Paused
	Finished
)

var stateNames = [...]string{"stopped", "running", "paused", "finished"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

// MarshalText writes the state name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ErrRunning is returned by operations that need the runner to be idle.
var ErrRunning = errors.New("simulation is running")

// A Runner drives a scheduler at a fixed pace and lets other goroutines
// pause, continue, single-step and observe it. All scheduler access goes
// through the runner lock, so listeners run while the lock is held and must
// not call back into the runner.
type Runner struct {
	lock      sync.Mutex
	scheduler scheduling.Scheduler
	interval  time.Duration
	logger    *slog.Logger

	state  State
	resume chan struct{}
}

// NewRunner creates a runner that steps s once per interval. A zero interval
// steps as fast as possible.
func NewRunner(
	s scheduling.Scheduler,
	interval time.Duration,
	logger *slog.Logger,
) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}

	return &Runner{
		scheduler: s,
		interval:  interval,
		logger:    logger,
	}
}

// State returns the current runner state.
func (r *Runner) State() State {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.state
}

// Status returns the state name.
func (r *Runner) Status() string {
	return r.State().String()
}

// Snapshot returns a copy of the scheduler state.
func (r *Runner) Snapshot() scheduling.Snapshot {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.scheduler.Snapshot()
}

// Run steps the scheduler until every process finished or ctx is done. A
// paused runner waits inside Run until Continue is called. When ctx ends the
// runner returns to Stopped and Run may be called again.
func (r *Runner) Run(ctx context.Context) error {
	r.lock.Lock()
	switch r.state {
	case Running, Paused:
		r.lock.Unlock()
		return ErrRunning
	case Finished:
		r.lock.Unlock()
		return nil
	}
	r.state = Running
	r.lock.Unlock()

	r.logger.Info("simulation started", slog.Duration("interval", r.interval))

	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if err := r.waitTurn(ctx, tick); err != nil {
			r.stop()
			return err
		}

		r.lock.Lock()
		switch r.state {
		case Finished:
			r.lock.Unlock()
			return nil
		case Paused:
			r.lock.Unlock()
			continue
		}

		more := r.scheduler.Step()
		if !more {
			r.finish()
		}
		r.lock.Unlock()

		if !more {
			return nil
		}
	}
}

// waitTurn blocks while the runner is paused and then until the next tick
// is due.
func (r *Runner) waitTurn(ctx context.Context, tick <-chan time.Time) error {
	for {
		r.lock.Lock()
		resume := r.resume
		r.lock.Unlock()

		if resume == nil {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-resume:
		}
	}

	if tick == nil {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tick:
		return nil
	}
}

// Pause suspends a running simulation after the current tick.
func (r *Runner) Pause() {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.state != Running {
		return
	}

	r.state = Paused
	r.resume = make(chan struct{})
	r.logger.Info("simulation paused", slog.Int("clock", r.clock()))
}

// Continue resumes a paused simulation.
func (r *Runner) Continue() {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.state != Paused {
		return
	}

	r.state = Running
	r.release()
	r.logger.Info("simulation continued", slog.Int("clock", r.clock()))
}

// StepOnce performs a single tick while the runner is stopped or paused. It
// reports whether more ticks are meaningful.
func (r *Runner) StepOnce() (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	switch r.state {
	case Running:
		return false, ErrRunning
	case Finished:
		return false, nil
	}

	more := r.scheduler.Step()
	if !more {
		r.finish()
	}

	return more, nil
}

func (r *Runner) stop() {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.state == Finished {
		return
	}

	r.state = Stopped
	r.release()
	r.logger.Info("simulation stopped", slog.Int("clock", r.clock()))
}

// finish must be called with the lock held.
func (r *Runner) finish() {
	r.state = Finished
	r.release()

	m, _ := r.scheduler.Metrics()
	r.logger.Info("simulation finished",
		slog.Int("clock", r.clock()),
		slog.Float64("cpu_utilization", m.CPUUtilization),
	)
}

func (r *Runner) release() {
	if r.resume != nil {
		close(r.resume)
		r.resume = nil
	}
}

func (r *Runner) clock() int {
	return r.scheduler.Snapshot().Clock
}
