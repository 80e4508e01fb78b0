// Package aggregation reduces a filtered record set to summary views.
// Every function here is pure and safe to run concurrently over the same rows.
package aggregation

import (
	"github.com/shopspring/decimal"
)

// Supported reduce operators.
const (
	OpCount = "count"
	OpSum   = "sum"
)

// Aggregator defines the reduce semantics of an aggregation operator.
// To add a new operator: implement this interface and register it in Operators.
type Aggregator interface {
	// Initial returns the aggregate value after the first row for a key.
	// count → 1; sum → the incoming value itself.
	Initial(incoming decimal.Decimal) decimal.Decimal

	// Apply folds an incoming value into an existing aggregate.
	Apply(current, incoming decimal.Decimal) decimal.Decimal
}

// Operators is the registry of all supported aggregation operators.
var Operators = map[string]Aggregator{
	OpCount: countAgg{},
	OpSum:   sumAgg{},
}

// countAgg increments by 1 per row. The incoming value is ignored.
type countAgg struct{}

func (countAgg) Initial(_ decimal.Decimal) decimal.Decimal    { return decimal.NewFromInt(1) }
func (countAgg) Apply(cur, _ decimal.Decimal) decimal.Decimal { return cur.Add(decimal.NewFromInt(1)) }

// sumAgg accumulates the sum of incoming values.
type sumAgg struct{}

func (sumAgg) Initial(v decimal.Decimal) decimal.Decimal      { return v }
func (sumAgg) Apply(cur, inc decimal.Decimal) decimal.Decimal { return cur.Add(inc) }

// grouped folds values per key with one operator and remembers the order in
// which keys first appeared.
type grouped[K comparable] struct {
	op     Aggregator
	order  []K
	values map[K]decimal.Decimal
}

func newGrouped[K comparable](op string) *grouped[K] {
	return &grouped[K]{
		op:     Operators[op],
		values: make(map[K]decimal.Decimal),
	}
}

func (g *grouped[K]) add(key K, v decimal.Decimal) {
	cur, ok := g.values[key]
	if !ok {
		g.order = append(g.order, key)
		g.values[key] = g.op.Initial(v)
		return
	}
	g.values[key] = g.op.Apply(cur, v)
}

func (g *grouped[K]) keys() []K { return g.order }

func (g *grouped[K]) value(key K) decimal.Decimal { return g.values[key] }
