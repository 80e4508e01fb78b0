package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func decs(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, dec(v))
	}
	return out
}

func TestMean(t *testing.T) {
	require.False(t, Mean(nil).Valid)

	got := Mean(decs("10", "20", "30", "40", "1000"))
	require.True(t, got.Valid)
	require.True(t, dec("220").Equal(got.Decimal))

	got = Mean(decs("0.1", "0.2"))
	require.True(t, dec("0.15").Equal(got.Decimal))
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []decimal.Decimal
		p      float64
		want   string
	}{
		{"interpolates between ranks", decs("10", "20", "30", "40", "1000"), 0.95, "808"},
		{"unsorted input", decs("1000", "30", "10", "40", "20"), 0.95, "808"},
		{"median of even count", decs("1", "2", "3", "4"), 0.5, "2.5"},
		{"exact rank", decs("1", "2", "3", "4", "5"), 0.5, "3"},
		{"single value", decs("42"), 0.95, "42"},
		{"zero percentile is the minimum", decs("5", "1", "9"), 0, "1"},
		{"full percentile is the maximum", decs("5", "1", "9"), 1, "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantile(tt.values, tt.p)
			require.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestQuantile_DoesNotReorderInput(t *testing.T) {
	values := decs("3", "1", "2")
	Quantile(values, 0.5)
	require.Equal(t, decs("3", "1", "2"), values)
}
