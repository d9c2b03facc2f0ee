// Package simulation wires a Round-Robin scheduler with its runner and the
// optional recorder, tracer and monitor that observe it.
package simulation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sarchlab/rrsched/datarecording"
	"github.com/sarchlab/rrsched/logging"
	"github.com/sarchlab/rrsched/monitoring"
	"github.com/sarchlab/rrsched/report"
	"github.com/sarchlab/rrsched/scheduling"
	"github.com/sarchlab/rrsched/tracing"
)

// A Simulation owns one scheduler run and the services attached to it.
type Simulation struct {
	id        string
	scheduler *scheduling.RoundRobin
	runner    *Runner
	logger    *slog.Logger

	dataRecorder datarecording.DataRecorder
	traceWriter  *tracing.CSVTraceWriter
	monitor      *monitoring.Monitor

	terminated bool
}

// ID returns the unique id of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Scheduler returns the scheduler being simulated.
func (s *Simulation) Scheduler() *scheduling.RoundRobin {
	return s.scheduler
}

// Runner returns the runner that paces the scheduler.
func (s *Simulation) Runner() *Runner {
	return s.runner
}

// DataRecorder returns the recorder, or nil if recording is off.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the monitor, or nil if monitoring is off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Run runs the simulation until all processes finish or ctx is done.
func (s *Simulation) Run(ctx context.Context) error {
	return s.runner.Run(ctx)
}

// Report builds the report of the current state.
func (s *Simulation) Report() report.Report {
	return report.FromSnapshot(s.runner.Snapshot(), s.scheduler.Quantum())
}

// Terminate stops the monitor, flushes the trace, stores the final report
// and closes the recorder. Terminating twice does nothing.
func (s *Simulation) Terminate() error {
	if s.terminated {
		return nil
	}
	s.terminated = true

	var errs []error

	if s.monitor != nil {
		errs = append(errs, s.monitor.Shutdown(context.Background()))
	}

	if s.traceWriter != nil {
		errs = append(errs, s.traceWriter.Close())
	}

	if s.dataRecorder != nil {
		s.Report().Record(s.dataRecorder)
		errs = append(errs, s.dataRecorder.Close())
	}

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Error("terminating simulation", logging.ErrAttr(err))
	}

	return err
}
