package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// File names written by WriteCSVDir.
const (
	ProcessesFile = "processes.csv"
	StatesFile    = "states.csv"
	MetricsFile   = "metrics.csv"
)

var processHeader = []string{
	"Process", "Burst", "Arrival", "Priority",
	"Start", "Completion", "Turnaround", "Wait",
}

// WriteProcessesCSV writes the process table.
func (r Report) WriteProcessesCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(processHeader); err != nil {
		return err
	}

	for _, p := range r.Processes {
		err := cw.Write([]string{
			p.Name,
			strconv.Itoa(p.BurstTime),
			strconv.Itoa(p.ArrivalTime),
			p.Priority.String(),
			p.StartTime.String(),
			p.CompletionTime.String(),
			p.TurnaroundTime.String(),
			strconv.Itoa(p.WaitTime),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteStatesCSV writes the time by process state matrix.
func (r Report) WriteStatesCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{"Tick"}, r.States.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for t, row := range r.States.Rows {
		if err := cw.Write(append([]string{strconv.Itoa(t)}, row...)); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteMetricsCSV writes the formatted metrics.
func (r Report) WriteMetricsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}

	for _, l := range r.MetricLines() {
		if err := cw.Write([]string{l.Name, l.Value}); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteCSVDir writes the three tables into dir, creating it if needed.
func (r Report) WriteCSVDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{ProcessesFile, r.WriteProcessesCSV},
		{StatesFile, r.WriteStatesCSV},
		{MetricsFile, r.WriteMetricsCSV},
	}

	for _, wr := range writers {
		if err := writeFile(filepath.Join(dir, wr.name), wr.write); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
