// Package csvfile loads sales records from a headered CSV export.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
	"github.com/aevon-lab/salesboard/internal/core/storage"
)

// Source implements storage.RecordSource over a CSV file whose first line
// holds the column names.
type Source struct {
	path      string
	columns   storage.ColumnMap
	delimiter rune
}

// NewSource creates a CSV source. A zero delimiter means comma.
func NewSource(path string, columns storage.ColumnMap, delimiter rune) *Source {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Source{path: path, columns: columns, delimiter: delimiter}
}

// Load decodes every data row in file order.
func (s *Source) Load(ctx context.Context) ([]v1.Sale, error) {
	start := time.Now()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	sales, err := s.read(ctx, f)
	if err != nil {
		return nil, err
	}

	slog.Info("[CSV] Loaded sales", "path", s.path, "rows", len(sales), "elapsed", time.Since(start))
	return sales, nil
}

func (s *Source) read(ctx context.Context, r io.Reader) ([]v1.Sale, error) {
	cr := csv.NewReader(r)
	cr.Comma = s.delimiter
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", storage.ErrMalformedRecord)
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	pos, err := headerPositions(header, s.columns)
	if err != nil {
		return nil, err
	}

	var sales []v1.Sale
	for row := 1; ; row++ {
		if row%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, storage.MalformedRowf(row, "%v", err)
		}

		sale, err := decodeRow(fields, pos)
		if err != nil {
			return nil, storage.MalformedRowf(row, "%v", err)
		}
		sales = append(sales, sale)
	}

	return sales, nil
}

// headerPositions maps each record field, in ColumnMap.Ordered order, to its CSV position.
func headerPositions(header []string, m storage.ColumnMap) ([]int, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := byName[name]; !dup {
			byName[name] = i
		}
	}

	names := m.Ordered()
	pos := make([]int, len(names))
	for i, name := range names {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", storage.ErrMalformedRecord, name)
		}
		pos[i] = p
	}
	return pos, nil
}

const (
	fieldOrderID = iota
	fieldProductName
	fieldCategory
	fieldCustomerName
	fieldEmail
	fieldRegion
	fieldSaleDate
	fieldSaleYear
	fieldSaleMonth
	fieldQuantity
	fieldUnitPrice
	fieldTotalValue
	fieldPaymentMethod
)

func decodeRow(fields []string, pos []int) (v1.Sale, error) {
	get := func(field int) string {
		return strings.TrimSpace(fields[pos[field]])
	}

	s := v1.Sale{
		OrderID:       get(fieldOrderID),
		ProductName:   get(fieldProductName),
		Category:      get(fieldCategory),
		CustomerName:  get(fieldCustomerName),
		Email:         get(fieldEmail),
		Region:        get(fieldRegion),
		PaymentMethod: get(fieldPaymentMethod),
	}

	var err error
	if s.SaleDate, err = v1.ParseDate(get(fieldSaleDate)); err != nil {
		return s, err
	}
	if s.SaleYear, err = strconv.Atoi(get(fieldSaleYear)); err != nil {
		return s, fmt.Errorf("invalid sale year: %w", err)
	}
	if s.SaleMonth, err = strconv.Atoi(get(fieldSaleMonth)); err != nil {
		return s, fmt.Errorf("invalid sale month: %w", err)
	}
	if s.Quantity, err = strconv.ParseInt(get(fieldQuantity), 10, 64); err != nil {
		return s, fmt.Errorf("invalid quantity: %w", err)
	}
	if s.UnitPrice, err = decimal.NewFromString(get(fieldUnitPrice)); err != nil {
		return s, fmt.Errorf("invalid unit price: %w", err)
	}
	if s.TotalValue, err = decimal.NewFromString(get(fieldTotalValue)); err != nil {
		return s, fmt.Errorf("invalid total value: %w", err)
	}

	return s, nil
}
