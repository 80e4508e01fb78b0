package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
)

func TestMonthlyRevenue(t *testing.T) {
	t.Run("two months in order", func(t *testing.T) {
		rows := []v1.Sale{
			row("1", "SP", "Moda", v1.NewDate(2024, time.January, 20), 1, "100"),
			row("2", "SP", "Moda", v1.NewDate(2024, time.February, 2), 1, "50"),
		}

		series := MonthlyRevenue(rows)
		require.Len(t, series, 2)
		require.Equal(t, MonthOf(2024, 1), series[0].Period)
		require.True(t, dec("100").Equal(series[0].Revenue))
		require.Equal(t, MonthOf(2024, 2), series[1].Period)
		require.True(t, dec("50").Equal(series[1].Revenue))
	})

	t.Run("sorted ascending without gap filling", func(t *testing.T) {
		rows := []v1.Sale{
			row("1", "SP", "Moda", v1.NewDate(2024, time.March, 1), 1, "10"),
			row("2", "SP", "Moda", v1.NewDate(2023, time.November, 1), 1, "20"),
			row("3", "SP", "Moda", v1.NewDate(2024, time.March, 31), 2, "5"),
			row("4", "SP", "Moda", v1.NewDate(2023, time.December, 15), 1, "1"),
		}

		series := MonthlyRevenue(rows)
		require.Len(t, series, 3)
		require.Equal(t, "2023-11", series[0].Period.String())
		require.Equal(t, "2023-12", series[1].Period.String())
		require.Equal(t, "2024-03", series[2].Period.String())
		require.True(t, dec("20").Equal(series[2].Revenue))
	})

	t.Run("groups on year and month fields", func(t *testing.T) {
		r := row("1", "SP", "Moda", v1.NewDate(2024, time.January, 31), 1, "10")
		// Fields are authoritative for grouping even if the date says otherwise.
		r.SaleMonth = 2

		series := MonthlyRevenue([]v1.Sale{r})
		require.Equal(t, MonthOf(2024, 2), series[0].Period)
	})

	t.Run("empty set", func(t *testing.T) {
		series := MonthlyRevenue(nil)
		require.NotNil(t, series)
		require.Empty(t, series)
	})
}
