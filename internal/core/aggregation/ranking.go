package aggregation

import (
	"sort"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
)

// DefaultTopCategories is the ranking size used when none is given.
const DefaultTopCategories = 10

// CategoryCount is the number of rows of one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// TopCategories returns at most n categories by row count, descending.
// Ties are broken by category name, ascending. n <= 0 means
// DefaultTopCategories.
func TopCategories(rows []v1.Sale, n int) []CategoryCount {
	if n <= 0 {
		n = DefaultTopCategories
	}

	g := newGrouped[string](OpCount)
	for _, r := range rows {
		g.add(r.Category, r.TotalValue)
	}

	ranked := make([]CategoryCount, 0, len(g.keys()))
	for _, c := range g.keys() {
		ranked = append(ranked, CategoryCount{Category: c, Count: g.value(c).IntPart()})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
