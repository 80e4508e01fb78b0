package geo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

const boundariesKey = "boundaries"

// feature is the subset of a GeoJSON feature the resolver reads.
type feature struct {
	Properties map[string]interface{} `json:"properties"`
	Geometry   Geometry               `json:"geometry"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// HTTPResolver resolves boundaries from a GeoJSON FeatureCollection served
// over HTTP. The collection is fetched once on first use and indexed by the
// featureKey property; a failed fetch is retried on the next call.
type HTTPResolver struct {
	url        string
	featureKey string
	aliases    Aliases
	client     *http.Client

	mu         sync.RWMutex
	boundaries map[string]Geometry
	fetchGroup singleflight.Group // Dedupe concurrent fetches
}

// NewHTTPResolver creates a resolver for the collection at url.
func NewHTTPResolver(url, featureKey string, timeout time.Duration, aliases Aliases) *HTTPResolver {
	return &HTTPResolver{
		url:        url,
		featureKey: featureKey,
		aliases:    aliases,
		client:     &http.Client{Timeout: timeout},
	}
}

// ResolveBoundary returns the geometry for regionKey after alias resolution.
func (r *HTTPResolver) ResolveBoundary(ctx context.Context, regionKey string) (Geometry, error) {
	boundaries, err := r.getOrFetch(ctx)
	if err != nil {
		return Geometry{}, err
	}

	g, ok := boundaries[r.aliases.Resolve(regionKey)]
	if !ok {
		return Geometry{}, fmt.Errorf("%w: %q", ErrBoundaryNotFound, regionKey)
	}
	return g, nil
}

func (r *HTTPResolver) getOrFetch(ctx context.Context) (map[string]Geometry, error) {
	r.mu.RLock()
	if r.boundaries != nil {
		defer r.mu.RUnlock()
		return r.boundaries, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.fetchGroup.Do(boundariesKey, func() (interface{}, error) {
		// Double-check cache after acquiring singleflight lock
		r.mu.RLock()
		if r.boundaries != nil {
			defer r.mu.RUnlock()
			return r.boundaries, nil
		}
		r.mu.RUnlock()

		boundaries, err := r.fetch(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.boundaries = boundaries
		r.mu.Unlock()

		return boundaries, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(map[string]Geometry), nil
}

func (r *HTTPResolver) fetch(ctx context.Context) (map[string]Geometry, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build boundary request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch boundaries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch boundaries: unexpected status %s", resp.Status)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode boundaries: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("decode boundaries: expected FeatureCollection, got %q", fc.Type)
	}

	boundaries := make(map[string]Geometry, len(fc.Features))
	for _, f := range fc.Features {
		v, ok := f.Properties[r.featureKey]
		if !ok || v == nil {
			continue
		}
		boundaries[fmt.Sprint(v)] = f.Geometry
	}

	slog.Info("[Geo] Loaded boundaries",
		"url", r.url,
		"features", len(fc.Features),
		"indexed", len(boundaries),
		"elapsed", time.Since(start),
	)
	return boundaries, nil
}
