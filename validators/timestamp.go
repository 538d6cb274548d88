package validators

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	dateLayout,
}

const dateLayout = "2006-01-02"

// Timestamp accepts RFC 3339 as well as the zone-less forms HTML date inputs send.
// Zone-less values are read as UTC. Empty strings decode to the zero time, which
// the "filled" rule rejects.
type Timestamp struct {
	time.Time
	// DateOnly is set when the input carried no clock time
	DateOnly bool `json:"-"`
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time, t.DateOnly = time.Time{}, false
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time, t.DateOnly = parsed, layout == dateLayout
			return nil
		}
	}
	return errors.Errorf("invalid time %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return t.Time.MarshalJSON()
}

// Value returns the time or the zero time for a nil pointer
func (t *Timestamp) Value() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.Time
}

// EndOfDayIn returns the last second of the calendar day in loc for date-only values
// and the instant itself otherwise.
func (t *Timestamp) EndOfDayIn(loc *time.Location) time.Time {
	if t == nil {
		return time.Time{}
	}
	if !t.DateOnly {
		return t.Time
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, loc)
}
