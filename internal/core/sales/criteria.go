package sales

import (
	"errors"
	"fmt"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
)

// ErrInvalidCriteria marks criteria the engine refuses to evaluate.
var ErrInvalidCriteria = errors.New("invalid filter criteria")

// DateRange is an inclusive calendar range. A zero bound means "open",
// resolved against the store bounds by Normalize.
type DateRange struct {
	Start v1.Date
	End   v1.Date
}

// Contains reports whether d lies inside the inclusive range.
// Both bounds must be set.
func (r DateRange) Contains(d v1.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s]", r.Start, r.End)
}

// Criteria is the active selection for one filtering pass.
type Criteria struct {
	Regions    Selection[string]
	Categories Selection[string]
	Dates      DateRange
}

// Everything selects all regions, all categories and the full date range.
func Everything() Criteria {
	return Criteria{
		Regions:    All[string](),
		Categories: All[string](),
	}
}

// Normalize resolves open date bounds to the store's observed [min, max],
// clamps explicit bounds into it, and rejects inverted ranges.
// An inverted range is reported, never swapped. A window lying entirely
// past either store bound collapses to its explicit bound, so the result
// always has Start <= End and selects nothing.
func (c Criteria) Normalize(minDate, maxDate v1.Date) (Criteria, error) {
	if !c.Dates.Start.IsZero() && !c.Dates.End.IsZero() && c.Dates.Start.After(c.Dates.End) {
		return c, invalidCriteriaf("start date %s is after end date %s", c.Dates.Start, c.Dates.End)
	}

	if c.Dates.Start.IsZero() || c.Dates.Start.Before(minDate) {
		c.Dates.Start = minDate
	}
	if c.Dates.End.IsZero() || c.Dates.End.After(maxDate) {
		c.Dates.End = maxDate
	}

	switch {
	case c.Dates.Start.After(c.Dates.End) && c.Dates.Start.After(maxDate):
		c.Dates.End = c.Dates.Start
	case c.Dates.Start.After(c.Dates.End):
		c.Dates.Start = c.Dates.End
	}
	return c, nil
}

func invalidCriteriaf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidCriteria, fmt.Sprintf(format, args...))
}
