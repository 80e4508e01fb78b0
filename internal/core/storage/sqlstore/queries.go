package sqlstore

// SQL queries for the sales table. They are plain SELECTs without
// placeholders so the same text runs on PostgreSQL and SQLite.

const (
	// queryLoadSales returns every line in insertion order; line_id preserves
	// the dataset's original row order.
	queryLoadSales = `
		SELECT
			order_id, product_name, category, customer_name, email,
			region, sale_date, sale_year, sale_month,
			quantity, unit_price, total_value, payment_method
		FROM sales
		ORDER BY line_id ASC
	`

	// queryCountSales doubles as the schema probe: it fails when the table
	// has not been migrated yet.
	queryCountSales = `SELECT COUNT(*) FROM sales`
)
