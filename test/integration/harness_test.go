//go:build integration

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/aevon-lab/salesboard/internal/core/storage"
	"github.com/aevon-lab/salesboard/internal/core/storage/csvfile"
	"github.com/aevon-lab/salesboard/internal/core/storage/sqlstore"
	"github.com/aevon-lab/salesboard/internal/migrations"
	"github.com/aevon-lab/salesboard/internal/projection"
	"github.com/aevon-lab/salesboard/internal/server"
	"github.com/aevon-lab/salesboard/internal/store"
)

type integrationHarness struct {
	baseURL    string
	client     *http.Client
	cancel     context.CancelFunc
	serverDone chan error
}

func (h *integrationHarness) close(t *testing.T) {
	t.Helper()

	h.cancel()
	select {
	case err := <-h.serverDone:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Log("server shutdown timed out")
	}
}

// startHarness loads src into a store and serves the full API on a free port.
// db may be nil for file-backed sources.
func startHarness(t *testing.T, src storage.RecordSource, db server.HealthChecker) *integrationHarness {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	st, err := store.Load(ctx, src, store.DefaultExcludedRegions)
	if err != nil {
		cancel()
		t.Fatalf("load store: %v", err)
	}

	formatter := projection.NewFormatter(language.English, "R$", "N/A")
	svc := projection.NewService(st, projection.Options{MaxPageSize: 100}, formatter, nil)

	port := freePort(t)
	srv := server.New(fmt.Sprintf("127.0.0.1:%d", port), "release", st, db)
	svc.RegisterRoutes(srv.Engine)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Run(ctx)
	}()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	waitForHealthy(t, baseURL)

	return &integrationHarness{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		cancel:     cancel,
		serverDone: serverDone,
	}
}

func startCSVHarness(t *testing.T) *integrationHarness {
	t.Helper()
	return startHarness(t, csvfile.NewSource(fixturePath(t), storage.DefaultColumns(), 0), nil)
}

// startSQLHarness migrates db, seeds it from the CSV fixture and serves it
// through the SQL adapter.
func startSQLHarness(t *testing.T, db *sql.DB, driver string) *integrationHarness {
	t.Helper()

	require.NoError(t, migrations.RunMigrations(db, driver, true))
	require.NoError(t, resetDatabase(db))
	seedDatabase(t, db, driver)

	adapter, err := sqlstore.NewAdapterFromDB(db, driver)
	require.NoError(t, err)

	return startHarness(t, adapter, adapter)
}

func waitForHealthy(t *testing.T, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatalf("server did not become healthy at %s", baseURL)
}

// getJSON issues a GET and decodes the body into out when out is non-nil.
func getJSON(t *testing.T, client *http.Client, endpoint string, query url.Values, out interface{}) (int, []byte) {
	t.Helper()

	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	resp, err := client.Get(endpoint)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode, body
}

func resetDatabase(db *sql.DB) error {
	_, err := db.Exec(`DELETE FROM sales`)
	return err
}

func seedDatabase(t *testing.T, db *sql.DB, driver string) {
	t.Helper()

	rows, err := csvfile.NewSource(fixturePath(t), storage.DefaultColumns(), 0).Load(context.Background())
	require.NoError(t, err)

	insert := insertSaleQuery(driver)
	for _, r := range rows {
		require.True(t, r.ConsistentTotal(decimal.Zero), "fixture row %s", r.OrderID)
		_, err := db.Exec(insert,
			r.OrderID, r.ProductName, r.Category, r.CustomerName, r.Email,
			r.Region, r.SaleDate.String(), r.SaleYear, r.SaleMonth,
			r.Quantity, r.UnitPrice.String(), r.TotalValue.String(), r.PaymentMethod,
		)
		require.NoError(t, err)
	}
}

func insertSaleQuery(driver string) string {
	placeholders := make([]string, 13)
	for i := range placeholders {
		if driver == sqlstore.DriverPostgres {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	return `INSERT INTO sales (
		order_id, product_name, category, customer_name, email,
		region, sale_date, sale_year, sale_month,
		quantity, unit_price, total_value, payment_method
	) VALUES (` + strings.Join(placeholders, ", ") + `)`
}

func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func fixturePath(t *testing.T) string {
	t.Helper()

	path, err := filepath.Abs(filepath.Join("testdata", "sales.csv"))
	require.NoError(t, err)
	return path
}
