package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyStarted is returned when a process is added after the tick
	// that should have admitted it.
	ErrAlreadyStarted = errors.New("process arrival tick has already passed")

	// ErrSimulationDone is returned when a process is added after the
	// scheduler reported that no work remains.
	ErrSimulationDone = errors.New("simulation already finished")

	// ErrProcessNotNew is returned when the added process has already left
	// the New state.
	ErrProcessNotNew = errors.New("process is not in the New state")
)

// ConfigError reports an invalid scheduler configuration.
type ConfigError struct {
	Quantum int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid quantum %d: must be positive", e.Quantum)
}

// ListenerError records a listener failure during notification. The
// scheduler logs it and keeps running.
type ListenerError struct {
	Index int
	Tick  int
	Err   error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %d failed at tick %d: %v",
		e.Index, e.Tick, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}
