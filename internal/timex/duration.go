// Package timex provides a JSON-friendly duration type for config files.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidDuration is returned when a JSON value is neither a duration
// string nor a number of nanoseconds.
var ErrInvalidDuration = errors.New("invalid duration")

// Duration embeds time.Duration and unmarshals from either a string
// ("5m", "300ms") or an integer nanosecond count.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return ErrInvalidDuration
	}
}
