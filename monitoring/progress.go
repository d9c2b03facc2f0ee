package monitoring

import (
	"time"

	"github.com/sarchlab/rrsched/scheduling"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// NewProgressBar summarizes a snapshot. Processes that arrived but did not
// finish count as in progress.
func NewProgressBar(
	name string,
	start time.Time,
	s scheduling.Snapshot,
) ProgressBar {
	bar := ProgressBar{
		Name:      name,
		StartTime: start,
		Total:     uint64(len(s.Processes)),
		Finished:  uint64(len(s.Finished)),
	}

	bar.InProgress = uint64(len(s.ReadyQueue))
	if s.Running != nil {
		bar.InProgress++
	}

	return bar
}
