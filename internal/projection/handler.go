package projection

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	v1 "github.com/aevon-lab/salesboard/internal/api/v1"
	httperr "github.com/aevon-lab/salesboard/internal/core/errors"
	"github.com/aevon-lab/salesboard/internal/core/sales"
)

// errInvalidParam marks malformed non-criteria query parameters.
var errInvalidParam = errors.New("invalid query parameter")

// allKeyword selects every value of a dimension.
const allKeyword = "all"

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	v := r.Group("/v1")
	v.GET("/filters", s.HandleFilters)
	v.GET("/report", s.HandleReport)
	v.GET("/records", s.HandleRecords)
	v.GET("/regions/geojson", s.HandleChoropleth)
}

// HandleFilters handles GET /v1/filters
func (s *Service) HandleFilters(c *gin.Context) {
	opts, err := s.Filters()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// HandleReport handles GET /v1/report
// Query parameters: region (repeatable), category (repeatable), start, end, top
func (s *Service) HandleReport(c *gin.Context) {
	q := c.Request.URL.Query()

	criteria, err := parseCriteria(q)
	if err != nil {
		writeError(c, err)
		return
	}
	top, err := intParam(q, "top", 0)
	if err != nil {
		writeError(c, err)
		return
	}

	report, err := s.FilterAndAggregate(c.Request.Context(), criteria, top)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// HandleRecords handles GET /v1/records
// Query parameters: the report filters plus limit and offset
func (s *Service) HandleRecords(c *gin.Context) {
	q := c.Request.URL.Query()

	criteria, err := parseCriteria(q)
	if err != nil {
		writeError(c, err)
		return
	}
	limit, err := intParam(q, "limit", 0)
	if err != nil {
		writeError(c, err)
		return
	}
	offset, err := intParam(q, "offset", 0)
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := s.Records(c.Request.Context(), criteria, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// HandleChoropleth handles GET /v1/regions/geojson
// Query parameters: the report filters
func (s *Service) HandleChoropleth(c *gin.Context) {
	criteria, err := parseCriteria(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := s.Choropleth(c.Request.Context(), criteria)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// parseCriteria reads the filter parameters. A dimension parameter that is
// absent or equal to "all" selects everything; a parameter present with only
// empty values selects nothing.
func parseCriteria(q url.Values) (sales.Criteria, error) {
	c := sales.Criteria{
		Regions:    selectionParam(q, "region"),
		Categories: selectionParam(q, "category"),
	}

	var err error
	if c.Dates.Start, err = dateParam(q, "start"); err != nil {
		return c, err
	}
	if c.Dates.End, err = dateParam(q, "end"); err != nil {
		return c, err
	}
	return c, nil
}

func selectionParam(q url.Values, key string) sales.Selection[string] {
	raw, present := q[key]
	if !present {
		return sales.All[string]()
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.EqualFold(v, allKeyword) {
			return sales.All[string]()
		}
		values = append(values, v)
	}
	return sales.Subset(values...)
}

func dateParam(q url.Values, key string) (v1.Date, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return v1.Date{}, nil
	}
	d, err := v1.ParseDate(raw)
	if err != nil {
		return v1.Date{}, fmt.Errorf("%w: %s: %v", sales.ErrInvalidCriteria, key, err)
	}
	return d, nil
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errInvalidParam, key, raw)
	}
	return n, nil
}

// writeError maps service errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sales.ErrInvalidCriteria):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidCriteriaError,
			Message:   "Invalid filter criteria",
			Details:   err.Error(),
		})
	case errors.Is(err, errInvalidParam), errors.Is(err, ErrInvalidPage):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidParamError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrGeoUnavailable):
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpGeoUnavailableError,
			Message:   "Region boundaries are unavailable",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrStoreNotReady):
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpStoreNotReadyError,
			Message:   "Sales data is not loaded",
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to compute report",
			Details:   err.Error(),
		})
	}
}
