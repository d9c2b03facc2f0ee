package tracing

import (
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// CSVTraceWriter is a tracer that stores completed tasks into a CSV file.
type CSVTraceWriter struct {
	path string
	file *os.File

	tasks      []Task
	bufferSize int
}

// NewCSVTraceWriter creates a new CSVTraceWriter. The file is created by
// Init.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the tracing csv file. It panics if the file already exists.
func (t *CSVTraceWriter) Init() {
	if t.path == "" {
		t.path = "rrsched_trace_" + xid.New().String()
	}

	filename := t.Filename()
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file, "ID, Kind, What, Where, Start, End\n")

	atexit.Register(func() {
		_ = t.Close()
	})
}

// Filename returns the CSV file name.
func (t *CSVTraceWriter) Filename() string {
	return t.path + ".csv"
}

// StartTask does nothing; rows are written when tasks end.
func (t *CSVTraceWriter) StartTask(_ Task) {}

// EndTask buffers a completed task.
func (t *CSVTraceWriter) EndTask(task Task) {
	t.tasks = append(t.tasks, task)
	if len(t.tasks) >= t.bufferSize {
		t.Flush()
	}
}

// Flush flushes the tasks to the CSV file.
func (t *CSVTraceWriter) Flush() {
	for _, task := range t.tasks {
		fmt.Fprintf(t.file, "%s, %s, %s, %s, %d, %d\n",
			task.ID,
			task.Kind,
			task.What,
			task.Where,
			task.StartTime,
			task.EndTime,
		)
	}

	t.tasks = nil
}

// Close flushes and closes the file. Closing twice is harmless.
func (t *CSVTraceWriter) Close() error {
	if t.file == nil {
		return nil
	}

	t.Flush()
	err := t.file.Close()
	t.file = nil

	return err
}
