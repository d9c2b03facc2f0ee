package scheduling

import "log/slog"

// Builder can build Round-Robin schedulers.
type Builder struct {
	quantum int
	logger  *slog.Logger
}

// MakeBuilder creates a builder with the default quantum.
func MakeBuilder() Builder {
	return Builder{quantum: DefaultQuantum}
}

// WithQuantum sets the maximum number of consecutive ticks a process may
// hold the CPU.
func (b Builder) WithQuantum(quantum int) Builder {
	b.quantum = quantum
	return b
}

// WithLogger sets the logger that reports lifecycle events and listener
// failures.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates the scheduler.
func (b Builder) Build() (*RoundRobin, error) {
	if b.quantum <= 0 {
		return nil, &ConfigError{Quantum: b.quantum}
	}

	s := &RoundRobin{
		bookkeeper: newBookkeeper(b.logger),
		quantum:    b.quantum,
	}

	return s, nil
}
