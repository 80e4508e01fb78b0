package geo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/aevon-lab/salesboard/internal/core/aggregation"
)

// FeatureProperties are the per-region values painted on the map.
type FeatureProperties struct {
	Region  string          `json:"region"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Feature is one region boundary with its revenue.
type Feature struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// Choropleth is a GeoJSON FeatureCollection extended with the color scale and
// the regions that could not be drawn. Unresolved regions still count in
// every numeric aggregate.
type Choropleth struct {
	Type       string                  `json:"type"`
	Features   []Feature               `json:"features"`
	ColorScale *aggregation.ColorScale `json:"color_scale"`
	Unresolved []string                `json:"unresolved"`
}

// BuildChoropleth joins regional revenue with boundaries from resolver.
// Regions without a boundary are listed in Unresolved; any other resolver
// error aborts the build.
func BuildChoropleth(ctx context.Context, resolver BoundaryResolver, view aggregation.RegionalView) (Choropleth, error) {
	out := Choropleth{
		Type:       "FeatureCollection",
		Features:   make([]Feature, 0, len(view.Regions)),
		ColorScale: view.ColorScale,
		Unresolved: []string{},
	}

	for _, rr := range view.Regions {
		g, err := resolver.ResolveBoundary(ctx, rr.Region)
		if errors.Is(err, ErrBoundaryNotFound) {
			out.Unresolved = append(out.Unresolved, rr.Region)
			continue
		}
		if err != nil {
			return Choropleth{}, err
		}

		out.Features = append(out.Features, Feature{
			Type:       "Feature",
			ID:         rr.Region,
			Geometry:   g,
			Properties: FeatureProperties{Region: rr.Region, Revenue: rr.Revenue},
		})
	}

	return out, nil
}
