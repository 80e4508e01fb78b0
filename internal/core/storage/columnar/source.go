// Package columnar loads sales records from parquet files through Apache Arrow.
package columnar

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
	"github.com/aevon-lab/salesboard/internal/core/storage"
)

// readChunkSize bounds the rows materialized per Arrow record batch.
const readChunkSize = 64 * 1024

// Source implements storage.RecordSource over a single parquet file.
type Source struct {
	path    string
	columns storage.ColumnMap
	mem     memory.Allocator
}

// NewSource creates a parquet source. Columns are resolved by name at load.
func NewSource(path string, columns storage.ColumnMap) *Source {
	return &Source{
		path:    path,
		columns: columns,
		mem:     memory.DefaultAllocator,
	}
}

// Load decodes every row of the parquet file in file order.
func (s *Source) Load(ctx context.Context) ([]v1.Sale, error) {
	start := time.Now()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	sales, err := s.read(ctx, f)
	if err != nil {
		return nil, err
	}

	slog.Info("[Parquet] Loaded sales", "path", s.path, "rows", len(sales), "elapsed", time.Since(start))
	return sales, nil
}

func (s *Source) read(ctx context.Context, r parquet.ReaderAtSeeker) ([]v1.Sale, error) {
	tbl, err := pqarrow.ReadTable(ctx, r, parquet.NewReaderProperties(s.mem), pqarrow.ArrowReadProperties{}, s.mem)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet table: %w", err)
	}
	defer tbl.Release()

	idx, err := resolveColumns(tbl.Schema(), s.columns)
	if err != nil {
		return nil, err
	}

	sales := make([]v1.Sale, 0, tbl.NumRows())

	tr := array.NewTableReader(tbl, readChunkSize)
	defer tr.Release()

	row := 0
	for tr.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec := tr.Record()
		for i := 0; i < int(rec.NumRows()); i++ {
			row++
			sale, err := decodeRow(rec, idx, i)
			if err != nil {
				return nil, storage.MalformedRowf(row, "%v", err)
			}
			sales = append(sales, sale)
		}
	}

	return sales, nil
}

// columnIndex holds the record-batch position of every mapped column.
type columnIndex struct {
	orderID, productName, category, customerName, email, region,
	saleDate, saleYear, saleMonth, quantity, unitPrice, totalValue, paymentMethod int
}

func resolveColumns(schema *arrow.Schema, m storage.ColumnMap) (columnIndex, error) {
	lookup := func(name string) (int, error) {
		found := schema.FieldIndices(name)
		if len(found) == 0 {
			return 0, fmt.Errorf("%w: missing column %q", storage.ErrMalformedRecord, name)
		}
		return found[0], nil
	}

	var (
		idx  columnIndex
		errs error
	)
	set := func(dst *int, name string) {
		if errs != nil {
			return
		}
		*dst, errs = lookup(name)
	}

	set(&idx.orderID, m.OrderID)
	set(&idx.productName, m.ProductName)
	set(&idx.category, m.Category)
	set(&idx.customerName, m.CustomerName)
	set(&idx.email, m.Email)
	set(&idx.region, m.Region)
	set(&idx.saleDate, m.SaleDate)
	set(&idx.saleYear, m.SaleYear)
	set(&idx.saleMonth, m.SaleMonth)
	set(&idx.quantity, m.Quantity)
	set(&idx.unitPrice, m.UnitPrice)
	set(&idx.totalValue, m.TotalValue)
	set(&idx.paymentMethod, m.PaymentMethod)

	return idx, errs
}

func decodeRow(rec arrow.Record, idx columnIndex, i int) (v1.Sale, error) {
	var (
		s   v1.Sale
		err error
	)

	strs := []struct {
		dst *string
		col int
	}{
		{&s.OrderID, idx.orderID},
		{&s.ProductName, idx.productName},
		{&s.Category, idx.category},
		{&s.CustomerName, idx.customerName},
		{&s.Email, idx.email},
		{&s.Region, idx.region},
		{&s.PaymentMethod, idx.paymentMethod},
	}
	for _, f := range strs {
		if *f.dst, err = stringAt(rec.Column(f.col), i); err != nil {
			return s, fmt.Errorf("column %q: %w", rec.ColumnName(f.col), err)
		}
	}

	if s.SaleDate, err = dateAt(rec.Column(idx.saleDate), i); err != nil {
		return s, fmt.Errorf("column %q: %w", rec.ColumnName(idx.saleDate), err)
	}

	year, err := intAt(rec.Column(idx.saleYear), i)
	if err != nil {
		return s, fmt.Errorf("column %q: %w", rec.ColumnName(idx.saleYear), err)
	}
	month, err := intAt(rec.Column(idx.saleMonth), i)
	if err != nil {
		return s, fmt.Errorf("column %q: %w", rec.ColumnName(idx.saleMonth), err)
	}
	s.SaleYear, s.SaleMonth = int(year), int(month)

	if s.Quantity, err = intAt(rec.Column(idx.quantity), i); err != nil {
		return s, fmt.Errorf("column %q: %w", rec.ColumnName(idx.quantity), err)
	}
	if s.UnitPrice, err = decimalAt(rec.Column(idx.unitPrice), i); err != nil {
		return s, fmt.Errorf("column %q: %w", rec.ColumnName(idx.unitPrice), err)
	}
	if s.TotalValue, err = decimalAt(rec.Column(idx.totalValue), i); err != nil {
		return s, fmt.Errorf("column %q: %w", rec.ColumnName(idx.totalValue), err)
	}

	return s, nil
}
