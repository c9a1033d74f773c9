// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tod is a wall-clock time-of-day backed by a Postgres TIME column.
type Tod struct{ time.Time }

// From: build a Tod from a time.Time (keep HH:mm:ss, drop date & zone)
func From(t time.Time) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// Parse: build a Tod from "HH:mm[:ss]"
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

// AddMinutes: advance the clock; the result wraps past midnight naturally.
func (t Tod) AddMinutes(m float64) Tod {
	return From(t.Time.Add(time.Duration(m * float64(time.Minute))))
}

// On: pin the time-of-day onto a calendar date.
func (t Tod) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, date.Location())
}

// HHMM: "HH:MM" rendering for API responses.
func (t Tod) HHMM() string {
	return t.Format("15:04")
}

// Scan: accept time.Time or string ("HH:MM[:SS]")
func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		t.Time = x
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return err
	}
	t.Time = tt
	return nil
}

// Value: send "HH:MM:SS" so Postgres TIME understands
func (t Tod) Value() (driver.Value, error) {
	if t.Time.IsZero() {
		return "00:00:00", nil
	}
	return t.Format("15:04:05"), nil
}

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format("15:04:05"))
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
