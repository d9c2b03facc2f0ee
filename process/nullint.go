package process

import (
	"encoding/json"
	"strconv"
)

// NullInt is an integer that may be unset. It is a value type so copying a
// Process copies its optional fields too.
type NullInt struct {
	Value int
	Valid bool
}

// Some returns a set NullInt.
func Some(v int) NullInt {
	return NullInt{Value: v, Valid: true}
}

// Get returns the value and whether it is set.
func (n NullInt) Get() (int, bool) {
	return n.Value, n.Valid
}

// String renders the value, or "-" when unset.
func (n NullInt) String() string {
	if !n.Valid {
		return "-"
	}

	return strconv.Itoa(n.Value)
}

// MarshalJSON encodes an unset value as null.
func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(n.Value)
}

// UnmarshalJSON decodes null as an unset value.
func (n *NullInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullInt{}
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*n = Some(v)

	return nil
}
