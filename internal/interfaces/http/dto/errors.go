package dto

import "net/http"

// API error codes surfaced alongside domain codes in the errors object
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeInternal     = "ERR_INTERNAL"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map are treated as client input errors (400):
// almost every domain code is a constructor or setter rejecting a value.
var domainCodeHTTPStatus = map[string]int{
	// auth
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,

	// ownership and account state
	"FORBIDDEN":        http.StatusForbidden,
	"ACCOUNT_LOCKED":   http.StatusForbidden,
	"ACCOUNT_INACTIVE": http.StatusForbidden,
	"USER_DEACTIVATED": http.StatusForbidden,

	// lookups
	"NOT_FOUND":      http.StatusNotFound,
	"ITEM_NOT_FOUND": http.StatusNotFound,

	// uniqueness and structural conflicts
	"ALREADY_EXISTS":     http.StatusConflict,
	"EMAIL_TAKEN":        http.StatusConflict,
	"DUPLICATE_SKU":      http.StatusConflict,
	"HAS_CHILDREN":       http.StatusConflict,
	"CART_ALREADY_OWNED": http.StatusConflict,
	"ALREADY_PAID":       http.StatusConflict,

	// state machine violations
	"INVALID_TRANSITION":          http.StatusUnprocessableEntity,
	"INVALID_ACTOR":               http.StatusUnprocessableEntity,
	"INVALID_STATE":               http.StatusUnprocessableEntity,
	"ORDER_NOT_PAYABLE":           http.StatusUnprocessableEntity,
	"NOT_CUSTOMIZABLE":            http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":            http.StatusUnprocessableEntity,
	"UNKNOWN_NOTIFICATION_STATUS": http.StatusUnprocessableEntity,

	// infrastructure failures surfaced as server errors
	"INTERNAL_ERROR":      http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
	"TOKEN_ERROR":         http.StatusInternalServerError,
	"UPLOAD_URL_FAILED":   http.StatusInternalServerError,
	"DB_ERROR":            http.StatusInternalServerError,
}

// apiCodeForStatus maps an HTTP status back to the coarse API error code
// placed in the errors object
var apiCodeForStatus = map[int]string{
	http.StatusBadRequest:          ErrCodeBadRequest,
	http.StatusUnauthorized:        ErrCodeUnauthorized,
	http.StatusForbidden:           ErrCodeForbidden,
	http.StatusNotFound:            ErrCodeNotFound,
	http.StatusConflict:            ErrCodeConflict,
	http.StatusUnprocessableEntity: ErrCodeInvalidState,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}

// APICode returns the coarse API error code for an HTTP status
func APICode(status int) string {
	if code, ok := apiCodeForStatus[status]; ok {
		return code
	}
	return ErrCodeInternal
}

// NewDomainErrorResponse builds the error envelope for a domain error.
// The numeric code is the HTTP status; the domain code travels in the
// errors object.
func NewDomainErrorResponse(domainCode, message string) Response {
	status := GetHTTPStatus(domainCode)
	return NewErrorResponse(status, message, map[string]string{
		"code":        APICode(status),
		"domain_code": domainCode,
	})
}
