// Package epochtime provides a timestamp type encoded as unix seconds.
package epochtime

import (
	"encoding/json"
	"time"
)

// EpochTime wraps time.Time to (un)marshal as fractional unix seconds.
type EpochTime struct{ time.Time }

// Now returns the current time as an EpochTime.
func Now() *EpochTime {
	return &EpochTime{Time: time.Now()}
}

// MarshalJSON encodes the time as unix seconds. The zero time encodes as 0.
func (t EpochTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("0"), nil
	}
	seconds := float64(t.Time.UnixNano()) / float64(time.Second)
	return json.Marshal(seconds)
}

// UnmarshalJSON decodes fractional unix seconds into a UTC time.
func (t *EpochTime) UnmarshalJSON(b []byte) error {
	var seconds float64
	if err := json.Unmarshal(b, &seconds); err != nil {
		return err
	}
	t.Time = time.Unix(0, int64(seconds*float64(time.Second))).UTC()
	return nil
}
