package process

import "fmt"

// ValidationError reports an invalid process parameter.
type ValidationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid process %s %d: %s", e.Field, e.Value, e.Reason)
}

func validate(arrival, burst int) error {
	if arrival < 0 {
		return &ValidationError{
			Field:  "arrival time",
			Value:  arrival,
			Reason: "must not be negative",
		}
	}

	if burst <= 0 {
		return &ValidationError{
			Field:  "burst time",
			Value:  burst,
			Reason: "must be positive",
		}
	}

	return nil
}
