package projection

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httperr "github.com/aevon-lab/salesboard/internal/core/errors"
	"github.com/aevon-lab/salesboard/internal/core/sales"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func doGet(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestService_HandleReport_StatusMapping(t *testing.T) {
	router := newTestRouter(newTestService(t, fixtureRows(), nil))

	tests := []struct {
		name          string
		query         string
		wantStatus    int
		wantErrorType string
	}{
		{"no filters", "", http.StatusOK, ""},
		{"region subset", "region=SP&region=RJ", http.StatusOK, ""},
		{"date range", "start=2024-01-01&end=2024-01-31", http.StatusOK, ""},
		{"inverted dates", "start=2024-02-01&end=2024-01-01", http.StatusBadRequest, httperr.HttpInvalidCriteriaError},
		{"malformed date", "start=01/02/2024", http.StatusBadRequest, httperr.HttpInvalidCriteriaError},
		{"non-numeric top", "top=many", http.StatusBadRequest, httperr.HttpInvalidParamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, router, "/v1/report?"+tt.query)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantErrorType != "" {
				var body httperr.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.Equal(t, tt.wantErrorType, body.ErrorType)
			}
		})
	}
}

func TestService_HandleReport_Body(t *testing.T) {
	router := newTestRouter(newTestService(t, fixtureRows(), nil))

	rec := doGet(t, router, "/v1/report?category=Electronics&top=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		RecordCount int `json:"record_count"`
		Metrics     struct {
			OrderCount        int     `json:"order_count"`
			TotalRevenue      string  `json:"total_revenue"`
			AverageOrderValue *string `json:"average_order_value"`
		} `json:"metrics"`
		MonthlySeries []struct {
			Period  string `json:"period"`
			Revenue string `json:"revenue"`
		} `json:"monthly_series"`
		Regional struct {
			Regions []struct {
				Region string `json:"region"`
			} `json:"regions"`
			ColorScale *struct {
				Degenerate bool `json:"degenerate"`
			} `json:"color_scale"`
		} `json:"regional"`
		TopCategories []struct {
			Category string `json:"category"`
			Count    int    `json:"count"`
		} `json:"top_categories"`
		Display Display `json:"display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Equal(t, 3, body.RecordCount)
	require.Equal(t, 2, body.Metrics.OrderCount)
	require.Equal(t, "600", body.Metrics.TotalRevenue)
	require.NotNil(t, body.Metrics.AverageOrderValue)
	require.Len(t, body.MonthlySeries, 1)
	require.Equal(t, "2024-01-01", body.MonthlySeries[0].Period)
	require.Len(t, body.Regional.Regions, 2)
	require.NotNil(t, body.Regional.ColorScale)
	require.Equal(t, "Electronics", body.TopCategories[0].Category)
	require.Equal(t, "R$600.00", body.Display.TotalRevenue)
}

func TestService_HandleReport_EmptySelection(t *testing.T) {
	router := newTestRouter(newTestService(t, fixtureRows(), nil))

	rec := doGet(t, router, "/v1/report?category=")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 0, body["record_count"])

	metrics := body["metrics"].(map[string]interface{})
	require.Nil(t, metrics["average_order_value"])
	require.Equal(t, "N/A", body["display"].(map[string]interface{})["average_order_value"])
}

func TestSelectionParam(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantAll bool
		want    []string
	}{
		{"absent", "", true, nil},
		{"all keyword", "region=all", true, nil},
		{"all keyword among values", "region=SP&region=ALL", true, nil},
		{"values", "region=SP&region=RJ", false, []string{"RJ", "SP"}},
		{"blank value is an empty subset", "region=", false, []string{}},
		{"blanks are skipped", "region=&region=MG", false, []string{"MG"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			sel := selectionParam(q, "region")
			require.Equal(t, tt.wantAll, sel.IsAll())
			if !tt.wantAll {
				require.Equal(t, tt.want, sales.SortedStrings(sel))
			}
		})
	}
}

func TestService_HandleFilters(t *testing.T) {
	router := newTestRouter(newTestService(t, fixtureRows(), nil))

	rec := doGet(t, router, "/v1/filters")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"regions": ["SP", "RJ", "MG"],
		"categories": ["Electronics", "Books"],
		"min_date": "2024-01-03",
		"max_date": "2024-02-14",
		"record_count": 4
	}`, rec.Body.String())
}

func TestService_HandleRecords(t *testing.T) {
	router := newTestRouter(newTestService(t, fixtureRows(), nil))

	rec := doGet(t, router, "/v1/records?region=MG")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Total   int         `json:"total"`
		Records []DetailRow `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 1, page.Total)
	require.Equal(t, "B-1", page.Records[0].OrderID)
	require.Equal(t, 2, page.Records[0].SaleMonth)

	rec = doGet(t, router, "/v1/records?offset=-1")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, router, "/v1/records?limit=ten")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestService_HandleChoropleth_Disabled(t *testing.T) {
	router := newTestRouter(newTestService(t, fixtureRows(), nil))

	rec := doGet(t, router, "/v1/regions/geojson")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, httperr.HttpGeoUnavailableError, body.ErrorType)
}

func TestService_HandleFilters_NoStore(t *testing.T) {
	router := newTestRouter(NewService(nil, Options{}, nil, nil))

	rec := doGet(t, router, "/v1/filters")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
