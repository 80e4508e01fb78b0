package aggregation

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Mean returns the arithmetic mean of values. It is null for no values.
func Mean(values []decimal.Decimal) decimal.NullDecimal {
	if len(values) == 0 {
		return decimal.NullDecimal{}
	}
	sum := decimal.Sum(decimal.Zero, values...)
	return decimal.NewNullDecimal(sum.Div(decimal.NewFromInt(int64(len(values)))))
}

// Quantile returns the p-quantile of values using linear interpolation
// between the two closest ranks, so Quantile([10 20 30 40 1000], 0.95) is 808.
// p is clamped to [0, 1]. values is not modified; it must not be empty.
func Quantile(values []decimal.Decimal, p float64) decimal.Decimal {
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })

	switch {
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[len(sorted)-1]
	}

	rank := decimal.NewFromInt(int64(len(sorted) - 1)).Mul(decimal.NewFromFloat(p))
	lo := rank.Floor()
	i := int(lo.IntPart())
	if i+1 >= len(sorted) {
		return sorted[i]
	}

	frac := rank.Sub(lo)
	return sorted[i].Add(sorted[i+1].Sub(sorted[i]).Mul(frac))
}
