package dto

import (
	"net/http"
	"strings"
)

// General error codes for failures that originate in the HTTP layer itself
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the account lacks the required role
	ErrCodeForbidden = "FORBIDDEN"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	"NOT_FOUND":         http.StatusNotFound,
	"PRODUCT_NOT_FOUND": http.StatusNotFound,
	"ALREADY_EXISTS":    http.StatusConflict,
	"CONFLICT":          http.StatusConflict,

	// Confirmation keys are intentionally indistinguishable from expired ones
	"INVALID_TOKEN": http.StatusNotFound,

	"MALFORMED_CATALOG":         http.StatusUnprocessableEntity,
	"UNRESOLVED_CATEGORY":       http.StatusUnprocessableEntity,
	"INVALID_FIELD":             http.StatusUnprocessableEntity,
	"FEED_UNAVAILABLE":          http.StatusBadGateway,
	"IMPORT_IN_PROGRESS":        http.StatusConflict,
	"SHOP_MISMATCH":             http.StatusForbidden,
	"SHOP_NOT_ACCEPTING_ORDERS": http.StatusUnprocessableEntity,

	"INVALID_STATE":  http.StatusUnprocessableEntity,
	"INVALID_AMOUNT": http.StatusUnprocessableEntity,
	"EMPTY_BASKET":   http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unmapped INVALID_* codes come from aggregate validation and map to 422;
// anything else unknown is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
