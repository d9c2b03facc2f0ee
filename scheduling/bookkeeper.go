package scheduling

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/rrsched/hooking"
	"github.com/sarchlab/rrsched/logging"
	"github.com/sarchlab/rrsched/process"
)

// bookkeeper holds the state every scheduling strategy shares: the process
// set, the ready queue, the running slot, the clock and the history. A
// strategy only decides the order of the operations inside one tick.
type bookkeeper struct {
	*hooking.HookableBase

	logger *slog.Logger

	processes    []*process.Process
	readyQueue   []*process.Process
	running      *process.Process
	clock        int
	cpuBusyTicks int
	finished     []*process.Process
	history      History
	done         bool

	listeners      []Listener
	listenerErrors []*ListenerError
}

func newBookkeeper(logger *slog.Logger) *bookkeeper {
	if logger == nil {
		logger = logging.Discard()
	}

	return &bookkeeper{
		HookableBase: hooking.NewHookableBase(),
		logger:       logger,
		history:      make(History),
	}
}

// AddProcess stores a copy of p.
func (b *bookkeeper) AddProcess(p *process.Process) error {
	switch {
	case b.done:
		return ErrSimulationDone
	case p.State != process.StateNew:
		return fmt.Errorf("%w: %s is %s", ErrProcessNotNew, p.Name(), p.State)
	case p.ArrivalTime < b.clock:
		return fmt.Errorf("%w: %s arrives at %d, clock is %d",
			ErrAlreadyStarted, p.Name(), p.ArrivalTime, b.clock)
	}

	b.processes = append(b.processes, p.Clone())

	return nil
}

// AddListener registers a snapshot receiver.
func (b *bookkeeper) AddListener(l Listener) {
	b.listeners = append(b.listeners, l)
}

// ListenerErrors returns the listener failures seen so far.
func (b *bookkeeper) ListenerErrors() []*ListenerError {
	out := make([]*ListenerError, len(b.listenerErrors))
	copy(out, b.listenerErrors)

	return out
}

// Clock returns the current tick.
func (b *bookkeeper) Clock() int {
	return b.clock
}

// Done tells if a Step call has reported that no work remains.
func (b *bookkeeper) Done() bool {
	return b.done
}

// Metrics returns the aggregate statistics, if any process has finished.
func (b *bookkeeper) Metrics() (Metrics, bool) {
	return computeMetrics(
		b.finished, b.clock, b.cpuBusyTicks, len(b.processes))
}

// Snapshot returns a deep copy of the current state.
func (b *bookkeeper) Snapshot() Snapshot {
	s := Snapshot{
		Processes:    copyProcesses(b.processes),
		Running:      b.running.Clone(),
		ReadyQueue:   make([]int, len(b.readyQueue)),
		Clock:        b.clock,
		CPUBusyTicks: b.cpuBusyTicks,
		Finished:     copyProcesses(b.finished),
		History:      b.history.Clone(),
	}

	for i, p := range b.readyQueue {
		s.ReadyQueue[i] = p.ID
	}

	s.Metrics, s.HasMetrics = b.Metrics()

	return s
}

func (b *bookkeeper) transition(p *process.Process, next process.State) {
	if !p.State.CanTransitionTo(next) {
		panic(fmt.Sprintf("scheduling: illegal transition of %s from %s to %s",
			p.Name(), p.State, next))
	}

	p.State = next
}

func (b *bookkeeper) enqueue(p *process.Process) {
	b.readyQueue = append(b.readyQueue, p)
}

func (b *bookkeeper) dequeue() *process.Process {
	p := b.readyQueue[0]
	b.readyQueue[0] = nil
	b.readyQueue = b.readyQueue[1:]

	return p
}

func (b *bookkeeper) recordState(p *process.Process) {
	b.history.record(b.clock, p.ID, p.State.Code())
}

func (b *bookkeeper) invokeProcessHook(pos *hooking.HookPos, p *process.Process) {
	if b.NumHooks() == 0 {
		return
	}

	b.InvokeHook(hooking.HookCtx{
		Domain: b,
		Pos:    pos,
		Item:   *p,
		Detail: b.clock,
	})
}

// endTick advances the clock, notifies everyone and reports whether work
// remains.
func (b *bookkeeper) endTick() bool {
	b.clock++

	if b.NumHooks() > 0 {
		b.InvokeHook(hooking.HookCtx{
			Domain: b,
			Pos:    HookPosTickEnd,
			Detail: b.clock,
		})
	}

	b.notify()

	more := len(b.finished) < len(b.processes)
	if !more {
		b.done = true
		b.logger.Info("simulation finished",
			slog.Int("clock", b.clock),
			slog.Int("cpu_busy_ticks", b.cpuBusyTicks))
	}

	return more
}

func (b *bookkeeper) notify() {
	for i, l := range b.listeners {
		err := callListener(l, b.Snapshot())
		if err == nil {
			continue
		}

		lErr := &ListenerError{Index: i, Tick: b.clock, Err: err}
		b.listenerErrors = append(b.listenerErrors, lErr)
		b.logger.Error("listener failed",
			slog.Int("listener", i),
			slog.Int("clock", b.clock),
			logging.ErrAttr(err))
	}
}

func callListener(l Listener, s Snapshot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panicked: %v", r)
		}
	}()

	return l.Receive(s)
}
