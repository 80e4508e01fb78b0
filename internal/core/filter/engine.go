// Package filter narrows the record store to the rows matching a Criteria.
package filter

import (
	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
	"github.com/aevon-lab/salesboard/internal/core/sales"
	"github.com/aevon-lab/salesboard/internal/store"
)

// FilteredSet is the store-order subsequence of records matching one
// Criteria. It owns its backing slice.
type FilteredSet struct {
	Criteria sales.Criteria
	Records  []v1.Sale
}

// Len returns the number of matching records.
func (f FilteredSet) Len() int { return len(f.Records) }

// Apply returns the records of st that match c, in store order.
// Criteria are normalized against the store's date bounds first; the
// normalized criteria are returned on the set.
func Apply(st *store.Store, c sales.Criteria) (FilteredSet, error) {
	minDate, maxDate := st.DateBounds()

	c, err := c.Normalize(minDate, maxDate)
	if err != nil {
		return FilteredSet{}, err
	}

	set := FilteredSet{Criteria: c, Records: []v1.Sale{}}
	if c.Regions.IsEmpty() || c.Categories.IsEmpty() || st.Len() == 0 {
		return set, nil
	}

	for r := range st.Records() {
		if Matches(c, r) {
			set.Records = append(set.Records, r)
		}
	}
	return set, nil
}

// Matches reports whether r passes every dimension of a normalized Criteria.
func Matches(c sales.Criteria, r v1.Sale) bool {
	return c.Regions.Contains(r.Region) &&
		c.Categories.Contains(r.Category) &&
		c.Dates.Contains(r.SaleDate)
}
