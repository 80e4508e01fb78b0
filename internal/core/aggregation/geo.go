package aggregation

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
)

// DefaultPercentile is the upper end of the color scale.
const DefaultPercentile = 0.95

// RegionRevenue is the revenue of one region.
type RegionRevenue struct {
	Region  string          `json:"region"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ColorScale is the display range of a choropleth: the mean regional revenue
// to a high percentile of it. Regions outside the range saturate at its ends.
//
// Degenerate is set when Max is not above Min, as with a single region or
// equal revenues. Consumers then paint every region with one color.
type ColorScale struct {
	Min        decimal.Decimal `json:"min"`
	Max        decimal.Decimal `json:"max"`
	Degenerate bool            `json:"degenerate"`
}

// RegionalView is the per-region revenue plus its color scale. ColorScale is
// nil when there are no regions.
type RegionalView struct {
	Regions    []RegionRevenue `json:"regions"`
	ColorScale *ColorScale     `json:"color_scale"`
}

// RegionalRevenue sums TotalValue per region, ordered by region name.
// A percentile outside (0, 1] falls back to DefaultPercentile.
func RegionalRevenue(rows []v1.Sale, percentile float64) RegionalView {
	if percentile <= 0 || percentile > 1 {
		percentile = DefaultPercentile
	}

	g := newGrouped[string](OpSum)
	for _, r := range rows {
		g.add(r.Region, r.TotalValue)
	}

	regions := slices.Clone(g.keys())
	slices.SortFunc(regions, strings.Compare)

	view := RegionalView{Regions: make([]RegionRevenue, 0, len(regions))}
	if len(regions) == 0 {
		return view
	}

	revenues := make([]decimal.Decimal, 0, len(regions))
	for _, region := range regions {
		rev := g.value(region)
		view.Regions = append(view.Regions, RegionRevenue{Region: region, Revenue: rev})
		revenues = append(revenues, rev)
	}

	scale := ColorScale{
		Min: Mean(revenues).Decimal,
		Max: Quantile(revenues, percentile),
	}
	scale.Degenerate = !scale.Max.GreaterThan(scale.Min)
	view.ColorScale = &scale

	return view
}
