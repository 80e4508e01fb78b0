package projection

import (
	"github.com/shopspring/decimal"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
	"github.com/aevon-lab/salesboard/internal/core/aggregation"
	"github.com/aevon-lab/salesboard/internal/core/sales"
)

// SelectionView is the wire form of a sales.Selection.
type SelectionView struct {
	All    bool     `json:"all"`
	Values []string `json:"values,omitempty"`
}

func selectionView(s sales.Selection[string]) SelectionView {
	if s.IsAll() {
		return SelectionView{All: true}
	}
	return SelectionView{Values: sales.SortedStrings(s)}
}

// CriteriaView echoes the normalized criteria a result was computed with.
type CriteriaView struct {
	Regions    SelectionView `json:"regions"`
	Categories SelectionView `json:"categories"`
	Start      v1.Date       `json:"start"`
	End        v1.Date       `json:"end"`
}

func criteriaView(c sales.Criteria) CriteriaView {
	return CriteriaView{
		Regions:    selectionView(c.Regions),
		Categories: selectionView(c.Categories),
		Start:      c.Dates.Start,
		End:        c.Dates.End,
	}
}

// Display holds preformatted strings for the headline metrics.
type Display struct {
	OrderCount        string `json:"order_count"`
	TotalRevenue      string `json:"total_revenue"`
	AverageOrderValue string `json:"average_order_value"`
}

// Report is the full result of one filter-and-aggregate pass.
type Report struct {
	Criteria      CriteriaView                `json:"criteria"`
	RecordCount   int                         `json:"record_count"`
	Metrics       aggregation.Metrics         `json:"metrics"`
	MonthlySeries []aggregation.MonthlyPoint  `json:"monthly_series"`
	Regional      aggregation.RegionalView    `json:"regional"`
	TopCategories []aggregation.CategoryCount `json:"top_categories"`
	Display       Display                     `json:"display"`
}

// FilterOptions lists the values a caller can filter on.
type FilterOptions struct {
	Regions     []string `json:"regions"`
	Categories  []string `json:"categories"`
	MinDate     v1.Date  `json:"min_date"`
	MaxDate     v1.Date  `json:"max_date"`
	RecordCount int      `json:"record_count"`
}

// DetailRow is one line of the detail table.
type DetailRow struct {
	OrderID       string          `json:"order_id"`
	ProductName   string          `json:"product_name"`
	Category      string          `json:"category"`
	CustomerName  string          `json:"customer_name"`
	Email         string          `json:"email"`
	Region        string          `json:"region"`
	SaleMonth     int             `json:"sale_month"`
	SaleYear      int             `json:"sale_year"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PaymentMethod string          `json:"payment_method"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

func detailRow(s v1.Sale) DetailRow {
	return DetailRow{
		OrderID:       s.OrderID,
		ProductName:   s.ProductName,
		Category:      s.Category,
		CustomerName:  s.CustomerName,
		Email:         s.Email,
		Region:        s.Region,
		SaleMonth:     s.SaleMonth,
		SaleYear:      s.SaleYear,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice,
		PaymentMethod: s.PaymentMethod,
		TotalValue:    s.TotalValue,
	}
}

// RecordsPage is one page of the filtered detail table.
type RecordsPage struct {
	Criteria CriteriaView `json:"criteria"`
	Total    int          `json:"total"`
	Limit    int          `json:"limit"`
	Offset   int          `json:"offset"`
	Records  []DetailRow  `json:"records"`
}
