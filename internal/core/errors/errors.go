package errors

const (
	HttpInternalError        = "internal_error"
	HttpInvalidCriteriaError = "invalid_criteria"
	HttpInvalidParamError    = "invalid_parameter"
	HttpGeoUnavailableError  = "geo_unavailable"
	HttpStoreNotReadyError   = "store_not_ready"
)

// ErrorResponse is the error response body of every API endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
