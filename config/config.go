// Package config loads simulator settings from defaults, a YAML file, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/rrsched/process"
)

// Limits and defaults of a simulation run.
const (
	DefaultQuantum      = 2
	DefaultNumProcesses = 5
	MaxProcesses        = 20
	DefaultInterval     = time.Second
	EnvPrefix           = "RRSCHED_"
)

// ProcessSpec describes one explicitly configured process.
type ProcessSpec struct {
	Arrival  int  `yaml:"arrival"`
	Burst    int  `yaml:"burst"`
	Priority *int `yaml:"priority,omitempty"`
}

// OutputConfig selects the artifacts written at the end of a run.
type OutputConfig struct {
	ReportDir  string `yaml:"report_dir"`
	JSONPath   string `yaml:"json_path"`
	RecordPath string `yaml:"record_path"`
	Record     bool   `yaml:"record"`
	TracePath  string `yaml:"trace_path"`
	Table      bool   `yaml:"table"`
	Gantt      bool   `yaml:"gantt"`
}

// MonitorConfig controls the HTTP monitoring server.
type MonitorConfig struct {
	Enabled     bool `yaml:"enabled"`
	Port        int  `yaml:"port"`
	OpenBrowser bool `yaml:"open_browser"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds every setting of a simulation run.
type Config struct {
	Quantum      int           `yaml:"quantum"`
	NumProcesses int           `yaml:"num_processes"`
	ArrivalRange process.Range `yaml:"arrival_range"`
	BurstRange   process.Range `yaml:"burst_range"`
	Seed         int64         `yaml:"seed"`
	Interval     time.Duration `yaml:"interval"`

	// Processes, when set, replaces the random workload.
	Processes []ProcessSpec `yaml:"processes"`

	Output  OutputConfig  `yaml:"output"`
	Monitor MonitorConfig `yaml:"monitor"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Quantum:      DefaultQuantum,
		NumProcesses: DefaultNumProcesses,
		ArrivalRange: process.DefaultArrivalRange,
		BurstRange:   process.DefaultBurstRange,
		Interval:     DefaultInterval,
		Output:       OutputConfig{Table: true},
		Log:          LogConfig{Level: "info", Format: "text"},
	}
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	return nil
}

// LoadEnv loads the given dotenv files, skipping missing ones, and overlays
// RRSCHED_* variables onto c.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		err := godotenv.Load(f)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err != nil {
			return fmt.Errorf("loading env file %s: %w", f, err)
		}
	}

	ints := map[string]*int{
		"QUANTUM":      &c.Quantum,
		"PROCESSES":    &c.NumProcesses,
		"ARRIVAL_MIN":  &c.ArrivalRange.Min,
		"ARRIVAL_MAX":  &c.ArrivalRange.Max,
		"BURST_MIN":    &c.BurstRange.Min,
		"BURST_MAX":    &c.BurstRange.Max,
		"MONITOR_PORT": &c.Monitor.Port,
	}
	for name, dst := range ints {
		if err := envInt(name, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup("SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError("SEED", v, err)
		}

		c.Seed = seed
	}

	if v, ok := lookup("INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError("INTERVAL", v, err)
		}

		c.Interval = d
	}

	strs := map[string]*string{
		"LOG_LEVEL":   &c.Log.Level,
		"LOG_FORMAT":  &c.Log.Format,
		"REPORT_DIR":  &c.Output.ReportDir,
		"JSON_PATH":   &c.Output.JSONPath,
		"RECORD_PATH": &c.Output.RecordPath,
		"TRACE_PATH":  &c.Output.TracePath,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	if v, ok := lookup("MONITOR"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return envError("MONITOR", v, err)
		}

		c.Monitor.Enabled = enabled
	}

	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || v == "" {
		return "", false
	}

	return v, true
}

func envInt(name string, dst *int) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return envError(name, v, err)
	}

	*dst = n

	return nil
}

func envError(name, value string, err error) error {
	return fmt.Errorf("invalid %s%s=%q: %w", EnvPrefix, name, value, err)
}

// Recording tells if ticks should be recorded into a database.
func (c Config) Recording() bool {
	return c.Output.Record || c.Output.RecordPath != ""
}

// Validate checks that the settings describe a runnable simulation.
func (c Config) Validate() error {
	if c.Quantum <= 0 {
		return fmt.Errorf("quantum must be positive, got %d", c.Quantum)
	}

	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %s", c.Interval)
	}

	if len(c.Processes) > MaxProcesses {
		return fmt.Errorf("at most %d processes are allowed, got %d",
			MaxProcesses, len(c.Processes))
	}

	if len(c.Processes) == 0 {
		if c.NumProcesses < 1 || c.NumProcesses > MaxProcesses {
			return fmt.Errorf("number of processes must be in [1, %d], got %d",
				MaxProcesses, c.NumProcesses)
		}

		_, err := c.FactoryBuilder().Build()
		if err != nil {
			return fmt.Errorf("invalid random workload: %w", err)
		}
	}

	if c.Monitor.Port < 0 || c.Monitor.Port > 65535 {
		return fmt.Errorf("monitor port out of range: %d", c.Monitor.Port)
	}

	return nil
}

// FactoryBuilder returns a process factory builder configured from c. A zero
// seed means a time-based seed.
func (c Config) FactoryBuilder() process.FactoryBuilder {
	b := process.MakeFactoryBuilder().
		WithArrivalRange(c.ArrivalRange.Min, c.ArrivalRange.Max).
		WithBurstRange(c.BurstRange.Min, c.BurstRange.Max)

	if c.Seed != 0 {
		b = b.WithSeed(c.Seed)
	}

	return b
}

// Workload creates the processes of the run: the configured list if any,
// otherwise NumProcesses random ones.
func (c Config) Workload() ([]*process.Process, error) {
	if len(c.Processes) == 0 {
		f, err := c.FactoryBuilder().Build()
		if err != nil {
			return nil, err
		}

		return f.CreateRandomBatch(c.NumProcesses), nil
	}

	f, err := process.MakeFactoryBuilder().Build()
	if err != nil {
		return nil, err
	}

	procs := make([]*process.Process, 0, len(c.Processes))
	for i, spec := range c.Processes {
		var (
			p   *process.Process
			err error
		)

		if spec.Priority != nil {
			p, err = f.CreateWithPriority(spec.Arrival, spec.Burst, *spec.Priority)
		} else {
			p, err = f.Create(spec.Arrival, spec.Burst)
		}

		if err != nil {
			return nil, fmt.Errorf("process %d: %w", i+1, err)
		}

		procs = append(procs, p)
	}

	return procs, nil
}
