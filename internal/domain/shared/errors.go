package shared

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
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConflict      = NewDomainError("CONFLICT", "Resource was modified by another process")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
)

// Catalog import errors
var (
	ErrMalformedCatalog       = NewDomainError("MALFORMED_CATALOG", "Catalog feed could not be parsed")
	ErrUnresolvedCategory     = NewDomainError("UNRESOLVED_CATEGORY", "Good references a category missing from the feed")
	ErrInvalidField           = NewDomainError("INVALID_FIELD", "Feed field value is out of range")
	ErrFeedUnavailable        = NewDomainError("FEED_UNAVAILABLE", "Remote catalog feed could not be fetched")
	ErrImportInProgress       = NewDomainError("IMPORT_IN_PROGRESS", "Another import is already running for this shop")
	ErrShopNotAcceptingOrders = NewDomainError("SHOP_NOT_ACCEPTING_ORDERS", "Shop is not accepting orders")
)

// Order lifecycle errors
var (
	ErrProductNotFound = NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
	ErrInvalidAmount   = NewDomainError("INVALID_AMOUNT", "Position amount must be a positive integer")
	ErrInvalidState    = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Confirmation protocol errors.
// ErrInvalidToken is deliberately generic: callers must not learn whether the
// key was malformed, already redeemed, or never existed.
var ErrInvalidToken = NewDomainError("INVALID_TOKEN", "Invalid or expired confirmation token")
