package v1

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Sale is one transaction line of the sales dataset.
// One order may span several lines, so OrderID is not unique per record.
type Sale struct {
	OrderID     string `json:"order_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`

	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`

	// Region is the geographic subdivision (a Brazilian state in the reference
	// dataset). Rows with an unresolvable region are dropped at load time.
	Region string `json:"region"`

	SaleDate Date `json:"sale_date"`

	// SaleYear and SaleMonth are redundant with SaleDate; monthly grouping
	// reads them directly.
	SaleYear  int `json:"sale_year"`
	SaleMonth int `json:"sale_month"`

	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	// TotalValue is trusted as given and never re-derived from Quantity*UnitPrice.
	TotalValue decimal.Decimal `json:"total_value"`

	PaymentMethod string `json:"payment_method"`
}

// Validate checks the schema invariants every loaded record must satisfy.
func (s *Sale) Validate() error {
	if s.OrderID == "" {
		return fmt.Errorf("order_id is required")
	}
	if s.Region == "" {
		return fmt.Errorf("region is required")
	}
	if s.Category == "" {
		return fmt.Errorf("category is required")
	}
	if s.SaleDate.IsZero() {
		return fmt.Errorf("sale_date is required")
	}
	if s.SaleYear != s.SaleDate.Year() {
		return fmt.Errorf("sale_year %d does not match sale_date %s", s.SaleYear, s.SaleDate)
	}
	if s.SaleMonth != int(s.SaleDate.Month()) {
		return fmt.Errorf("sale_month %d does not match sale_date %s", s.SaleMonth, s.SaleDate)
	}
	if s.Quantity < 0 {
		return fmt.Errorf("quantity must be >= 0, got %d", s.Quantity)
	}
	if s.UnitPrice.IsNegative() {
		return fmt.Errorf("unit_price must be >= 0, got %s", s.UnitPrice)
	}
	return nil
}

// ConsistentTotal reports whether TotalValue equals Quantity*UnitPrice
// within the given absolute tolerance.
func (s *Sale) ConsistentTotal(tolerance decimal.Decimal) bool {
	expected := s.UnitPrice.Mul(decimal.NewFromInt(s.Quantity))
	return expected.Sub(s.TotalValue).Abs().LessThanOrEqual(tolerance)
}
