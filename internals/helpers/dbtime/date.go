// Package dbtime parses the timestamps clients send in bodies and queries.
package dbtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const dayLayout = "2006-01-02"

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dayLayout,
}

// Date accepts RFC 3339 timestamps as well as plain "YYYY-MM-DD" days.
// Everything is normalised to UTC.
type Date struct {
	time.Time
	// DayOnly is set when the input carried no time of day.
	DayOnly bool
}

func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC(), DayOnly: layout == dayLayout}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// ParseOptional returns nil for an empty string.
func ParseOptional(s string) (*Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// EndOfRange turns a day-only bound into the last instant of that day so
// "endDate=2024-05-31" includes loans made on the 31st.
func (d Date) EndOfRange() time.Time {
	if d.DayOnly {
		return d.Time.Add(24*time.Hour - time.Nanosecond)
	}
	return d.Time
}

// Ptr returns the instant as *time.Time, nil for a nil receiver.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := sonic.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(d.Time.Format(time.RFC3339Nano))
}
