package filter

import (
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
	"github.com/aevon-lab/salesboard/internal/core/sales"
	"github.com/aevon-lab/salesboard/internal/store"
)

func sale(orderID, region, category string, date v1.Date, total int64) v1.Sale {
	return v1.Sale{
		OrderID:    orderID,
		Category:   category,
		Region:     region,
		SaleDate:   date,
		SaleYear:   date.Year(),
		SaleMonth:  int(date.Month()),
		Quantity:   1,
		UnitPrice:  decimal.NewFromInt(total),
		TotalValue: decimal.NewFromInt(total),
	}
}

func newStore(t *testing.T, rows ...v1.Sale) *store.Store {
	t.Helper()
	st, err := store.New(rows, store.DefaultExcludedRegions)
	require.NoError(t, err)
	return st
}

func orderIDs(set FilteredSet) []string {
	ids := make([]string, 0, set.Len())
	for _, r := range set.Records {
		ids = append(ids, r.OrderID)
	}
	return ids
}

func fixtureStore(t *testing.T) *store.Store {
	return newStore(t,
		sale("1", "SP", "Moda", v1.NewDate(2023, time.January, 5), 100),
		sale("2", "RJ", "Livros", v1.NewDate(2023, time.January, 31), 50),
		sale("3", "MG", "Moda", v1.NewDate(2023, time.February, 1), 70),
		sale("4", "SP", "Eletrônicos", v1.NewDate(2023, time.March, 15), 900),
		sale("5", "RJ", "Moda", v1.NewDate(2023, time.April, 30), 20),
	)
}

func TestApply(t *testing.T) {
	st := fixtureStore(t)

	tests := []struct {
		name     string
		criteria sales.Criteria
		want     []string
	}{
		{
			name:     "everything",
			criteria: sales.Everything(),
			want:     []string{"1", "2", "3", "4", "5"},
		},
		{
			name: "region subset",
			criteria: sales.Criteria{
				Regions:    sales.Subset("RJ", "MG"),
				Categories: sales.All[string](),
			},
			want: []string{"2", "3", "5"},
		},
		{
			name: "category subset keeps store order",
			criteria: sales.Criteria{
				Regions:    sales.All[string](),
				Categories: sales.Subset("Moda"),
			},
			want: []string{"1", "3", "5"},
		},
		{
			name: "inclusive date bounds",
			criteria: sales.Criteria{
				Regions:    sales.All[string](),
				Categories: sales.All[string](),
				Dates:      sales.DateRange{Start: v1.NewDate(2023, time.January, 31), End: v1.NewDate(2023, time.March, 15)},
			},
			want: []string{"2", "3", "4"},
		},
		{
			name: "open start bound",
			criteria: sales.Criteria{
				Regions:    sales.All[string](),
				Categories: sales.All[string](),
				Dates:      sales.DateRange{End: v1.NewDate(2023, time.January, 31)},
			},
			want: []string{"1", "2"},
		},
		{
			name: "bounds wider than the store are clamped",
			criteria: sales.Criteria{
				Regions:    sales.All[string](),
				Categories: sales.All[string](),
				Dates:      sales.DateRange{Start: v1.NewDate(2000, time.January, 1), End: v1.NewDate(2099, time.January, 1)},
			},
			want: []string{"1", "2", "3", "4", "5"},
		},
		{
			name: "all dimensions combined",
			criteria: sales.Criteria{
				Regions:    sales.Subset("SP", "RJ"),
				Categories: sales.Subset("Moda", "Eletrônicos"),
				Dates:      sales.DateRange{Start: v1.NewDate(2023, time.February, 1), End: v1.NewDate(2023, time.December, 31)},
			},
			want: []string{"4", "5"},
		},
		{
			name: "unknown region matches nothing",
			criteria: sales.Criteria{
				Regions:    sales.Subset("AM"),
				Categories: sales.All[string](),
			},
			want: []string{},
		},
		{
			name: "empty region subset",
			criteria: sales.Criteria{
				Regions:    sales.Subset[string](),
				Categories: sales.All[string](),
			},
			want: []string{},
		},
		{
			name:     "zero value criteria",
			criteria: sales.Criteria{},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Apply(st, tt.criteria)
			require.NoError(t, err)
			require.Equal(t, tt.want, orderIDs(set))
		})
	}
}

func TestApply_InvertedDates(t *testing.T) {
	st := fixtureStore(t)

	_, err := Apply(st, sales.Criteria{
		Regions:    sales.All[string](),
		Categories: sales.All[string](),
		Dates:      sales.DateRange{Start: v1.NewDate(2023, time.March, 1), End: v1.NewDate(2023, time.February, 1)},
	})
	require.ErrorIs(t, err, sales.ErrInvalidCriteria)
}

func TestApply_RegionAllIsNoOp(t *testing.T) {
	st := fixtureStore(t)
	allRegions := sales.Subset(st.Regions()...)

	categorySelections := []sales.Selection[string]{
		sales.All[string](),
		sales.Subset("Moda"),
		sales.Subset("Livros", "Eletrônicos"),
	}
	ranges := []sales.DateRange{
		{},
		{Start: v1.NewDate(2023, time.February, 1)},
		{Start: v1.NewDate(2023, time.January, 1), End: v1.NewDate(2023, time.January, 31)},
	}

	for _, cats := range categorySelections {
		for _, dates := range ranges {
			withAll, err := Apply(st, sales.Criteria{Regions: sales.All[string](), Categories: cats, Dates: dates})
			require.NoError(t, err)

			withEvery, err := Apply(st, sales.Criteria{Regions: allRegions, Categories: cats, Dates: dates})
			require.NoError(t, err)
			require.Equal(t, orderIDs(withEvery), orderIDs(withAll))

			for r := range st.Records() {
				matches := cats.Contains(r.Category) && withAll.Criteria.Dates.Contains(r.SaleDate)
				require.Equal(t, matches, slices.Contains(orderIDs(withAll), r.OrderID))
			}
		}
	}
}

func TestApply_EmptyCategoriesMatchNothing(t *testing.T) {
	st := fixtureStore(t)

	for _, regions := range []sales.Selection[string]{
		sales.All[string](),
		sales.Subset("SP"),
		sales.Subset("SP", "RJ", "MG"),
	} {
		set, err := Apply(st, sales.Criteria{Regions: regions, Categories: sales.Subset[string]()})
		require.NoError(t, err)
		require.Zero(t, set.Len())
	}
}

func TestApply_Idempotent(t *testing.T) {
	st := fixtureStore(t)
	c := sales.Criteria{
		Regions:    sales.Subset("SP", "RJ"),
		Categories: sales.All[string](),
	}

	first, err := Apply(st, c)
	require.NoError(t, err)
	second, err := Apply(st, c)
	require.NoError(t, err)

	require.Equal(t, first.Records, second.Records)
}

func TestApply_SetDoesNotAliasStore(t *testing.T) {
	st := fixtureStore(t)

	set, err := Apply(st, sales.Everything())
	require.NoError(t, err)
	set.Records[0].Region = "XX"

	again, err := Apply(st, sales.Everything())
	require.NoError(t, err)
	require.Equal(t, "SP", again.Records[0].Region)
}

func TestApply_EmptyStore(t *testing.T) {
	st := newStore(t)

	set, err := Apply(st, sales.Everything())
	require.NoError(t, err)
	require.Zero(t, set.Len())
}

// Three January records in SP and RJ, one category, all criteria open.
func TestApply_ScenarioAllOpen(t *testing.T) {
	st := newStore(t,
		sale("A-1", "SP", "Electronics", v1.NewDate(2024, time.January, 3), 100),
		sale("A-1", "RJ", "Electronics", v1.NewDate(2024, time.January, 10), 200),
		sale("A-2", "SP", "Electronics", v1.NewDate(2024, time.January, 28), 300),
	)

	set, err := Apply(st, sales.Everything())
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())
	require.Equal(t, v1.NewDate(2024, time.January, 3), set.Criteria.Dates.Start)
	require.Equal(t, v1.NewDate(2024, time.January, 28), set.Criteria.Dates.End)
}

func TestApply_WindowOutsideDataIsEmptyNotInverted(t *testing.T) {
	st := fixtureStore(t)

	for _, dates := range []sales.DateRange{
		{Start: v1.NewDate(2023, time.May, 1)},
		{End: v1.NewDate(2022, time.December, 31)},
	} {
		c := sales.Everything()
		c.Dates = dates

		set, err := Apply(st, c)
		require.NoError(t, err)
		require.Zero(t, set.Len())
		require.False(t, set.Criteria.Dates.Start.After(set.Criteria.Dates.End), "criteria %s", set.Criteria.Dates)
	}
}
