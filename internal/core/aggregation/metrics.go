package aggregation

import (
	"github.com/shopspring/decimal"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
)

// Metrics are the scalar summaries of a filtered set.
type Metrics struct {
	// OrderCount counts distinct order ids, not rows.
	OrderCount int `json:"order_count"`

	TotalRevenue decimal.Decimal `json:"total_revenue"`

	// AverageOrderValue is the mean TotalValue per row. It is null for an
	// empty set.
	AverageOrderValue decimal.NullDecimal `json:"average_order_value"`
}

// Summarize computes Metrics over rows.
func Summarize(rows []v1.Sale) Metrics {
	m := Metrics{TotalRevenue: decimal.Zero}
	if len(rows) == 0 {
		return m
	}

	sum := Operators[OpSum]
	orders := make(map[string]struct{}, len(rows))
	values := make([]decimal.Decimal, 0, len(rows))

	for i, r := range rows {
		orders[r.OrderID] = struct{}{}
		values = append(values, r.TotalValue)
		if i == 0 {
			m.TotalRevenue = sum.Initial(r.TotalValue)
			continue
		}
		m.TotalRevenue = sum.Apply(m.TotalRevenue, r.TotalValue)
	}

	m.OrderCount = len(orders)
	m.AverageOrderValue = Mean(values)
	return m
}
