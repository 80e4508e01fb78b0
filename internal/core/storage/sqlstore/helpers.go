package sqlstore

import (
	"fmt"
	"time"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// dateValue scans DATE columns from either driver: lib/pq yields time.Time,
// SQLite stores TEXT and yields string or []byte.
type dateValue struct {
	v1.Date
}

func (d *dateValue) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Date = v1.DateOf(v)
		return nil
	case string:
		parsed, err := v1.ParseDate(v)
		if err != nil {
			return err
		}
		d.Date = parsed
		return nil
	case []byte:
		parsed, err := v1.ParseDate(string(v))
		if err != nil {
			return err
		}
		d.Date = parsed
		return nil
	case nil:
		return fmt.Errorf("sale_date is NULL")
	default:
		return fmt.Errorf("unsupported sale_date type %T", src)
	}
}

// scanSaleRow scans one sales row into a Sale.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanSaleRow(row scanner) (v1.Sale, error) {
	var (
		s    v1.Sale
		date dateValue
	)

	err := row.Scan(
		&s.OrderID,
		&s.ProductName,
		&s.Category,
		&s.CustomerName,
		&s.Email,
		&s.Region,
		&date,
		&s.SaleYear,
		&s.SaleMonth,
		&s.Quantity,
		&s.UnitPrice,
		&s.TotalValue,
		&s.PaymentMethod,
	)
	if err != nil {
		return v1.Sale{}, fmt.Errorf("failed to scan sales row: %w", err)
	}
	s.SaleDate = date.Date

	return s, nil
}
