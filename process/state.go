package process

import "fmt"

// State is the lifecycle stage of a simulated process.
type State int

// All the process states. StateNew is initial and StateFinished is terminal.
const (
	StateNew State = iota
	StateReady
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "New"
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Code returns the one-character code used in state histories. StateNew has no
// code because processes that have not arrived are not tracked.
func (s State) Code() string {
	switch s {
	case StateReady:
		return "L"
	case StateRunning:
		return "E"
	case StateFinished:
		return "F"
	default:
		return ""
	}
}

// StateFromCode is the inverse of Code. It returns false for unknown codes.
func StateFromCode(code string) (State, bool) {
	switch code {
	case "L":
		return StateReady, true
	case "E":
		return StateRunning, true
	case "F":
		return StateFinished, true
	default:
		return StateNew, false
	}
}

var transitions = map[State][]State{
	StateNew:     {StateReady},
	StateReady:   {StateRunning},
	StateRunning: {StateReady, StateFinished},
}

// CanTransitionTo tells if moving from s to next is a legal edge of the
// process state machine.
func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{StateNew, StateReady, StateRunning, StateFinished} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown process state %q", string(text))
}
