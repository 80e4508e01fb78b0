// Package geo resolves region keys to map boundaries and joins them with
// regional revenue for choropleth rendering. Aggregation never depends on it.
package geo

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
)

// ErrBoundaryNotFound is returned when a region key has no known boundary.
var ErrBoundaryNotFound = errors.New("region boundary not found")

// Geometry is a GeoJSON geometry object. Coordinates are kept undecoded.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// BoundaryResolver maps a region key to its geographic boundary.
type BoundaryResolver interface {
	ResolveBoundary(ctx context.Context, regionKey string) (Geometry, error)
}
