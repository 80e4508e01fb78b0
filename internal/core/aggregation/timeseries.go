package aggregation

import (
	"slices"

	"github.com/shopspring/decimal"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
)

// MonthlyPoint is the revenue of one calendar month.
type MonthlyPoint struct {
	Period  Month           `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MonthlyRevenue sums TotalValue per (SaleYear, SaleMonth), ascending by
// month. Months without sales are absent, not zero.
func MonthlyRevenue(rows []v1.Sale) []MonthlyPoint {
	g := newGrouped[Month](OpSum)
	for _, r := range rows {
		g.add(MonthOf(r.SaleYear, r.SaleMonth), r.TotalValue)
	}

	months := slices.Clone(g.keys())
	slices.SortFunc(months, Month.compare)

	series := make([]MonthlyPoint, 0, len(months))
	for _, m := range months {
		series = append(series, MonthlyPoint{Period: m, Revenue: g.value(m)})
	}
	return series
}
