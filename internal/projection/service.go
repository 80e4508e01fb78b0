package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/aevon-lab/salesboard/internal/core/aggregation"
	"github.com/aevon-lab/salesboard/internal/core/filter"
	"github.com/aevon-lab/salesboard/internal/core/sales"
	"github.com/aevon-lab/salesboard/internal/geo"
	"github.com/aevon-lab/salesboard/internal/store"
)

const defaultPageSize = 50

var (
	// ErrStoreNotReady is returned when the service has no record store.
	ErrStoreNotReady = errors.New("record store not loaded")

	// ErrGeoUnavailable is returned by Choropleth when boundaries are disabled
	// or cannot be fetched.
	ErrGeoUnavailable = errors.New("region boundaries unavailable")

	// ErrInvalidPage marks bad pagination parameters.
	ErrInvalidPage = errors.New("invalid page")
)

// Options tunes the report.
type Options struct {
	TopCategories int
	Percentile    float64
	MaxPageSize   int
}

// Service implements the filter-and-aggregate query layer over one store.
type Service struct {
	store     *store.Store
	opts      Options
	formatter *Formatter
	resolver  geo.BoundaryResolver
}

// NewService creates a new projection service. resolver may be nil, which
// disables the choropleth endpoint only. A nil formatter renders English
// grouping with the R$ symbol.
func NewService(st *store.Store, opts Options, formatter *Formatter, resolver geo.BoundaryResolver) *Service {
	if formatter == nil {
		formatter = NewFormatter(language.English, "R$", "N/A")
	}
	if opts.TopCategories <= 0 {
		opts.TopCategories = aggregation.DefaultTopCategories
	}
	if opts.Percentile <= 0 || opts.Percentile > 1 {
		opts.Percentile = aggregation.DefaultPercentile
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 500
	}

	return &Service{
		store:     st,
		opts:      opts,
		formatter: formatter,
		resolver:  resolver,
	}
}

// FilterAndAggregate filters the store with c and computes every view over
// the result. top <= 0 uses the configured ranking size.
func (s *Service) FilterAndAggregate(ctx context.Context, c sales.Criteria, top int) (*Report, error) {
	start := time.Now()

	set, err := s.apply(c)
	if err != nil {
		return nil, err
	}
	if top <= 0 {
		top = s.opts.TopCategories
	}

	report := &Report{
		Criteria:    criteriaView(set.Criteria),
		RecordCount: set.Len(),
	}

	// The aggregators share only the read-only rows.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Metrics = aggregation.Summarize(set.Records)
		return gctx.Err()
	})
	g.Go(func() error {
		report.MonthlySeries = aggregation.MonthlyRevenue(set.Records)
		return gctx.Err()
	})
	g.Go(func() error {
		report.Regional = aggregation.RegionalRevenue(set.Records, s.opts.Percentile)
		return gctx.Err()
	})
	g.Go(func() error {
		report.TopCategories = aggregation.TopCategories(set.Records, top)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate filtered set: %w", err)
	}

	report.Display = s.formatter.Metrics(report.Metrics)

	slog.Debug("[Projection] Report computed",
		"criteria", set.Criteria.Dates,
		"rows", set.Len(),
		"elapsed", time.Since(start),
	)
	return report, nil
}

// Filters lists the distinct regions and categories and the date bounds.
func (s *Service) Filters() (*FilterOptions, error) {
	if s.store == nil {
		return nil, ErrStoreNotReady
	}

	minDate, maxDate := s.store.DateBounds()
	return &FilterOptions{
		Regions:     s.store.Regions(),
		Categories:  s.store.Categories(),
		MinDate:     minDate,
		MaxDate:     maxDate,
		RecordCount: s.store.Len(),
	}, nil
}

// Records returns one page of the filtered detail table. limit <= 0 uses a
// default page size; limits above MaxPageSize are capped.
func (s *Service) Records(_ context.Context, c sales.Criteria, limit, offset int) (*RecordsPage, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0", ErrInvalidPage)
	}
	if limit <= 0 {
		limit = min(defaultPageSize, s.opts.MaxPageSize)
	}
	limit = min(limit, s.opts.MaxPageSize)

	set, err := s.apply(c)
	if err != nil {
		return nil, err
	}

	page := &RecordsPage{
		Criteria: criteriaView(set.Criteria),
		Total:    set.Len(),
		Limit:    limit,
		Offset:   offset,
		Records:  []DetailRow{},
	}
	if offset >= set.Len() {
		return page, nil
	}

	end := min(offset+limit, set.Len())
	for _, r := range set.Records[offset:end] {
		page.Records = append(page.Records, detailRow(r))
	}
	return page, nil
}

// Choropleth joins the regional revenue of the filtered set with region
// boundaries.
func (s *Service) Choropleth(ctx context.Context, c sales.Criteria) (*geo.Choropleth, error) {
	if s.resolver == nil {
		return nil, fmt.Errorf("%w: boundary lookup disabled", ErrGeoUnavailable)
	}

	set, err := s.apply(c)
	if err != nil {
		return nil, err
	}

	view := aggregation.RegionalRevenue(set.Records, s.opts.Percentile)
	out, err := geo.BuildChoropleth(ctx, s.resolver, view)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeoUnavailable, err)
	}
	if len(out.Unresolved) > 0 {
		slog.Warn("[Geo] Regions without boundary", "regions", out.Unresolved)
	}
	return &out, nil
}

func (s *Service) apply(c sales.Criteria) (filter.FilteredSet, error) {
	if s.store == nil {
		return filter.FilteredSet{}, ErrStoreNotReady
	}
	return filter.Apply(s.store, c)
}
