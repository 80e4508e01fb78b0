package aggregation

import (
	"fmt"
	"time"
)

// Month identifies a calendar month. It is the bucket of the monthly series.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf builds the bucket from the redundant year and month fields of a
// record, never from its date.
func MonthOf(year, month int) Month {
	return Month{Year: year, Month: time.Month(month)}
}

// Start returns the first day of the month at UTC midnight.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Before orders months chronologically.
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

func (m Month) compare(o Month) int {
	switch {
	case m.Before(o):
		return -1
	case o.Before(m):
		return 1
	default:
		return 0
	}
}

// String renders the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MarshalJSON renders the month as its first day, YYYY-MM-01.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.Start().Format(time.DateOnly) + `"`), nil
}
