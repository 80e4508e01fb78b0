package storage

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
)

// ErrMalformedRecord is returned when a row cannot be decoded or a kept row
// violates the record schema. It is fatal to the load step.
var ErrMalformedRecord = errors.New("malformed sales record")

// RecordSource yields the full sales dataset with the fixed record schema.
// Sources only decode: they neither drop nor validate rows. Cleaning and
// Sale.Validate are the store's job.
type RecordSource interface {
	Load(ctx context.Context) ([]v1.Sale, error)
}

// ColumnMap names the source columns for each record field.
// The defaults match the headers of the reference Brazilian dataset.
type ColumnMap struct {
	OrderID       string `koanf:"order_id"`
	ProductName   string `koanf:"product_name"`
	Category      string `koanf:"category"`
	CustomerName  string `koanf:"customer_name"`
	Email         string `koanf:"email"`
	Region        string `koanf:"region"`
	SaleDate      string `koanf:"sale_date"`
	SaleYear      string `koanf:"sale_year"`
	SaleMonth     string `koanf:"sale_month"`
	Quantity      string `koanf:"quantity"`
	UnitPrice     string `koanf:"unit_price"`
	TotalValue    string `koanf:"total_value"`
	PaymentMethod string `koanf:"payment_method"`
}

// DefaultColumns returns the column names of the reference dataset.
func DefaultColumns() ColumnMap {
	return ColumnMap{
		OrderID:       "ID_Pedido",
		ProductName:   "Nome_Produto",
		Category:      "Categoria",
		CustomerName:  "Nome_Cliente",
		Email:         "Email",
		Region:        "Estado",
		SaleDate:      "Data_Venda",
		SaleYear:      "Ano_Venda",
		SaleMonth:     "Mes_Venda",
		Quantity:      "Quantidade",
		UnitPrice:     "Preco_Unitario",
		TotalValue:    "Valor_Total",
		PaymentMethod: "Metodo_Pagamento",
	}
}

// Ordered returns the column names in record field order.
func (m ColumnMap) Ordered() []string {
	return []string{
		m.OrderID, m.ProductName, m.Category, m.CustomerName, m.Email,
		m.Region, m.SaleDate, m.SaleYear, m.SaleMonth, m.Quantity,
		m.UnitPrice, m.TotalValue, m.PaymentMethod,
	}
}

// Validate rejects maps with blank column names.
func (m ColumnMap) Validate() error {
	for i, name := range m.Ordered() {
		if name == "" {
			return fmt.Errorf("column name for field #%d is empty", i)
		}
	}
	return nil
}

// MalformedRowf wraps ErrMalformedRecord with the offending row position.
func MalformedRowf(row int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: row %d: %s", ErrMalformedRecord, row, fmt.Sprintf(format, args...))
}
