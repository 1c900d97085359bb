package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrValidation      = NewDomainError("VALIDATION", "Invalid request")
	ErrProductNotFound = NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	ErrDataSource      = NewDomainError("DATA_SOURCE", "Store query failed")
	ErrPublishFailed   = NewDomainError("PUBLISH_FAILED", "Batch delivery failed")
	ErrPersistence     = NewDomainError("PERSISTENCE", "State could not be persisted")
	ErrStoreOffline    = NewDomainError("STORE_OFFLINE", "Store is unreachable")
)

// NewValidationError creates a validation error with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrValidation.Code, message)
}

// NewProductNotFoundError creates a product-not-found error carrying the offending SKU
func NewProductNotFoundError(sku string) *DomainError {
	return NewDomainError(ErrProductNotFound.Code, fmt.Sprintf("No product matches SKU %q", sku))
}
