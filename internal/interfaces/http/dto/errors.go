package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when the bearer credential is missing or wrong
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
)

// Resource and business error codes
const (
	// ErrCodeNotFound is used when a route or resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeProductNotFound is used when an order references an unknown SKU
	ErrCodeProductNotFound = "ERR_PRODUCT_NOT_FOUND"
)

// Availability error codes
const (
	// ErrCodeStoreOffline is used when the ERP store connection is down
	ErrCodeStoreOffline = "ERR_STORE_OFFLINE"
	// ErrCodeDataSource is used when a store query fails mid-request
	ErrCodeDataSource = "ERR_DATA_SOURCE"
	// ErrCodePersistence is used when committing state fails
	ErrCodePersistence = "ERR_PERSISTENCE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,

	ErrCodeNotFound: http.StatusNotFound,

	// Business rejection -> 422 Unprocessable Entity
	ErrCodeProductNotFound: http.StatusUnprocessableEntity,

	// Availability -> 503 / 500
	ErrCodeStoreOffline: http.StatusServiceUnavailable,
	ErrCodeDataSource:   http.StatusServiceUnavailable,
	ErrCodePersistence:  http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the wire format
var DomainErrorCodeMapping = map[string]string{
	"VALIDATION":        ErrCodeValidation,
	"PRODUCT_NOT_FOUND": ErrCodeProductNotFound,
	"DATA_SOURCE":       ErrCodeDataSource,
	"PERSISTENCE":       ErrCodePersistence,
	"STORE_OFFLINE":     ErrCodeStoreOffline,
}

// NormalizeErrorCode converts a domain error code to the wire format
// If the code is already in the wire format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
