// Package store holds the immutable, once-loaded sales record set.
package store

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
	"github.com/aevon-lab/salesboard/internal/core/storage"
)

// totalTolerance is the rounding slack allowed between TotalValue and
// Quantity*UnitPrice before a row is counted as inconsistent.
var totalTolerance = decimal.New(1, -2)

// DefaultExcludedRegions are the region sentinels for rows without a
// resolvable location.
var DefaultExcludedRegions = []string{"Desconhecido", "Unknown"}

// Store is the full record set after the load-and-clean step. It is built
// once and never written afterwards, so it is safe for concurrent readers.
type Store struct {
	records    []v1.Sale
	regions    []string
	categories []string
	minDate    v1.Date
	maxDate    v1.Date
	dropped    int

	// inconsistent counts kept rows whose TotalValue differs from
	// Quantity*UnitPrice by more than a cent. They are kept as given.
	inconsistent int
}

// Load pulls every row from src and builds a Store from it.
func Load(ctx context.Context, src storage.RecordSource, excludedRegions []string) (*Store, error) {
	start := time.Now()

	rows, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales records: %w", err)
	}

	st, err := New(rows, excludedRegions)
	if err != nil {
		return nil, err
	}

	if n := st.InconsistentTotals(); n > 0 {
		slog.Warn("[Store] Rows with total_value != quantity * unit_price", "rows", n)
	}

	slog.Info("[Store] Loaded record set",
		"rows", st.Len(),
		"dropped", st.dropped,
		"regions", len(st.regions),
		"categories", len(st.categories),
		"min_date", st.minDate,
		"max_date", st.maxDate,
		"elapsed", time.Since(start),
	)
	return st, nil
}

// New builds a Store from already-decoded rows, dropping rows whose region
// is one of excludedRegions. An empty list means DefaultExcludedRegions.
// Every kept row must pass Sale.Validate; dropped rows are never validated.
// The rows slice is copied.
func New(rows []v1.Sale, excludedRegions []string) (*Store, error) {
	if len(excludedRegions) == 0 {
		excludedRegions = DefaultExcludedRegions
	}
	excluded := make(map[string]struct{}, len(excludedRegions))
	for _, r := range excludedRegions {
		excluded[r] = struct{}{}
	}

	st := &Store{records: make([]v1.Sale, 0, len(rows))}
	seenRegion := make(map[string]struct{})
	seenCategory := make(map[string]struct{})

	for i := range rows {
		sale := rows[i]
		if _, skip := excluded[sale.Region]; skip {
			st.dropped++
			continue
		}
		if err := sale.Validate(); err != nil {
			return nil, storage.MalformedRowf(i+1, "%v", err)
		}
		if !sale.ConsistentTotal(totalTolerance) {
			st.inconsistent++
		}

		if _, ok := seenRegion[sale.Region]; !ok {
			seenRegion[sale.Region] = struct{}{}
			st.regions = append(st.regions, sale.Region)
		}
		if _, ok := seenCategory[sale.Category]; !ok {
			seenCategory[sale.Category] = struct{}{}
			st.categories = append(st.categories, sale.Category)
		}

		if st.minDate.IsZero() || sale.SaleDate.Before(st.minDate) {
			st.minDate = sale.SaleDate
		}
		if st.maxDate.IsZero() || sale.SaleDate.After(st.maxDate) {
			st.maxDate = sale.SaleDate
		}

		st.records = append(st.records, sale)
	}

	return st, nil
}

// InconsistentTotals returns how many records carry a TotalValue that does
// not match Quantity*UnitPrice.
func (s *Store) InconsistentTotals() int { return s.inconsistent }

// Len returns the number of records held.
func (s *Store) Len() int { return len(s.records) }

// Records yields every record in load order. Values are copies.
func (s *Store) Records() iter.Seq[v1.Sale] {
	return func(yield func(v1.Sale) bool) {
		for _, r := range s.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Regions returns the distinct regions in order of first appearance.
func (s *Store) Regions() []string {
	return append([]string(nil), s.regions...)
}

// Categories returns the distinct categories in order of first appearance.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// DateBounds returns the observed [min, max] sale dates. Both are zero when
// the store is empty.
func (s *Store) DateBounds() (v1.Date, v1.Date) {
	return s.minDate, s.maxDate
}
