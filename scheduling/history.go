package scheduling

import "sort"

// History maps a tick to the state code of every tracked process at that
// tick, keyed by process id. Codes are E (running), L (ready) and
// F (finished). Every simulated tick has a row; processes that have not
// arrived are absent from it.
type History map[int]map[int]string

func (h History) open(tick int) map[int]string {
	row, ok := h[tick]
	if !ok {
		row = make(map[int]string)
		h[tick] = row
	}

	return row
}

func (h History) record(tick, id int, code string) {
	row := h.open(tick)
	if code == "" {
		return
	}

	row[id] = code
}

// At returns the state code of a process at a tick, or "" when untracked.
func (h History) At(tick, id int) string {
	return h[tick][id]
}

// Ticks returns the recorded ticks in increasing order.
func (h History) Ticks() []int {
	ticks := make([]int, 0, len(h))
	for t := range h {
		ticks = append(ticks, t)
	}

	sort.Ints(ticks)

	return ticks
}

// MaxTick returns the largest recorded tick, or -1 if nothing is recorded.
func (h History) MaxTick() int {
	max := -1
	for t := range h {
		if t > max {
			max = t
		}
	}

	return max
}

// Clone returns a deep copy.
func (h History) Clone() History {
	c := make(History, len(h))
	for t, row := range h {
		rowCopy := make(map[int]string, len(row))
		for id, code := range row {
			rowCopy[id] = code
		}

		c[t] = rowCopy
	}

	return c
}
