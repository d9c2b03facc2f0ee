package datarecording

import (
	"strconv"
	"strings"

	"github.com/sarchlab/rrsched/process"
	"github.com/sarchlab/rrsched/scheduling"
)

// Table names written by TickRecorder.
const (
	TickTable      = "ticks"
	TickStateTable = "tick_states"
)

// TickEntry is one row per tick. RunningPID is the process that held the CPU
// during the tick, or 0 when the CPU idled.
type TickEntry struct {
	Tick           int
	RunningPID     int
	ReadyQueue     string
	CPUBusyTicks   int
	CPUUtilization float64
	FinishedCount  int
}

// TickStateEntry is one row per tracked process per tick.
type TickStateEntry struct {
	Tick          int
	PID           int
	State         string
	RemainingTime int
	WaitTime      int
}

// TickRecorder is a scheduling listener that streams every tick into a
// DataRecorder, so the state history does not have to be kept by the
// consumer.
type TickRecorder struct {
	recorder DataRecorder
}

// NewTickRecorder creates the tables and returns the listener.
func NewTickRecorder(recorder DataRecorder) *TickRecorder {
	recorder.CreateTable(TickTable, TickEntry{})
	recorder.CreateTable(TickStateTable, TickStateEntry{})

	return &TickRecorder{recorder: recorder}
}

// Receive records the tick that just ended.
func (r *TickRecorder) Receive(s scheduling.Snapshot) error {
	tick := s.Clock - 1
	row := s.History[tick]

	r.recorder.InsertData(TickTable, TickEntry{
		Tick:           tick,
		RunningPID:     executedIn(row),
		ReadyQueue:     joinIDs(s.ReadyQueue),
		CPUBusyTicks:   s.CPUBusyTicks,
		CPUUtilization: scheduling.CPUUtilization(s.CPUBusyTicks, s.Clock),
		FinishedCount:  len(s.Finished),
	})

	for _, p := range s.Processes {
		code, tracked := row[p.ID]
		if !tracked {
			continue
		}

		r.recorder.InsertData(TickStateTable, TickStateEntry{
			Tick:          tick,
			PID:           p.ID,
			State:         code,
			RemainingTime: p.RemainingTime,
			WaitTime:      p.WaitTime,
		})
	}

	return nil
}

// executedIn returns the process that ran in a history row. The running slot
// of the snapshot is not used since it is cleared by preemption and
// completion before listeners see it.
func executedIn(row map[int]string) int {
	running := process.StateRunning.Code()
	for id, code := range row {
		if code == running {
			return id
		}
	}

	return 0
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	return strings.Join(parts, " ")
}

var _ scheduling.Listener = (*TickRecorder)(nil)
