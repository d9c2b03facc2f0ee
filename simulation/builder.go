package simulation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"
	"github.com/sarchlab/rrsched/datarecording"
	"github.com/sarchlab/rrsched/logging"
	"github.com/sarchlab/rrsched/monitoring"
	"github.com/sarchlab/rrsched/process"
	"github.com/sarchlab/rrsched/scheduling"
	"github.com/sarchlab/rrsched/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	quantum   int
	processes []*process.Process
	interval  time.Duration
	logger    *slog.Logger
	listeners []scheduling.Listener

	recordOn   bool
	recordPath string
	traceOn    bool
	tracePath  string

	monitorOn   bool
	monitorPort int
	openBrowser bool
}

// MakeBuilder creates a new builder. Simulations step as fast as possible
// with nothing attached unless configured otherwise.
func MakeBuilder() Builder {
	return Builder{
		quantum: scheduling.DefaultQuantum,
	}
}

// WithQuantum sets the scheduler quantum.
func (b Builder) WithQuantum(quantum int) Builder {
	b.quantum = quantum
	return b
}

// WithProcesses sets the workload. Processes are copied when the simulation
// is built.
func (b Builder) WithProcesses(procs ...*process.Process) Builder {
	b.processes = append([]*process.Process(nil), procs...)
	return b
}

// WithInterval sets the wall-clock time between two ticks.
func (b Builder) WithInterval(interval time.Duration) Builder {
	b.interval = interval
	return b
}

// WithLogger sets the logger shared by all services.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithListener registers a snapshot listener. Listeners are notified in the
// order they are added, before the recorder.
func (b Builder) WithListener(l scheduling.Listener) Builder {
	b.listeners = append(append([]scheduling.Listener(nil), b.listeners...), l)
	return b
}

// WithRecording records every tick into <path>.sqlite3. An empty path uses
// a name derived from the simulation id.
func (b Builder) WithRecording(path string) Builder {
	b.recordOn = true
	b.recordPath = path
	return b
}

// WithTraceFile writes the wait and burst spans into <path>.csv.
func (b Builder) WithTraceFile(path string) Builder {
	b.traceOn = true
	b.tracePath = path
	return b
}

// WithMonitoring starts the monitoring server when the simulation is built.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowser opens the monitoring page in a browser once the server is up.
func (b Builder) WithBrowser() Builder {
	b.openBrowser = true
	return b
}

func (b Builder) parametersMustBeValid() error {
	if !b.monitorOn && b.monitorPort != 0 {
		return fmt.Errorf("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.openBrowser {
		return fmt.Errorf("browser cannot be opened when monitoring is disabled")
	}

	if b.interval < 0 {
		return fmt.Errorf("negative tick interval %s", b.interval)
	}

	return nil
}

// Build builds the simulation.
func (b Builder) Build() (*Simulation, error) {
	if err := b.parametersMustBeValid(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = logging.Discard()
	}

	sched, err := scheduling.MakeBuilder().
		WithQuantum(b.quantum).
		WithLogger(logger).
		Build()
	if err != nil {
		return nil, err
	}

	for _, p := range b.processes {
		if err := sched.AddProcess(p); err != nil {
			return nil, fmt.Errorf("adding %s: %w", p.Name(), err)
		}
	}

	for _, l := range b.listeners {
		sched.AddListener(l)
	}

	s := &Simulation{
		id:        xid.New().String(),
		scheduler: sched,
	}
	s.logger = logger.With(slog.String("simulation", s.id))

	if b.recordOn {
		path := b.recordPath
		if path == "" {
			path = "rrsched_" + s.id
		}

		recorder := datarecording.New(path)
		s.dataRecorder = recorder
		sched.AddListener(datarecording.NewTickRecorder(recorder))
		s.logger.Info("recording ticks", slog.String("file", recorder.Filename()))
	}

	if b.traceOn {
		path := b.tracePath
		if path == "" {
			path = "rrsched_trace_" + s.id
		}

		s.traceWriter = tracing.NewCSVTraceWriter(path)
		s.traceWriter.Init()
		tracing.CollectTrace(sched, s.traceWriter)
	}

	s.runner = NewRunner(sched, b.interval, s.logger)

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor(s.runner).
			WithPortNumber(b.monitorPort).
			WithLogger(s.logger)
		if b.openBrowser {
			s.monitor.WithBrowser()
		}

		if err := s.monitor.StartServer(); err != nil {
			return nil, err
		}
	}

	return s, nil
}
