package dto

import "net/http"

// Error codes carried by domain errors, mapped onto the status codes the
// admin frontend expects. 405 for a foreign store is kept for
// compatibility with the existing clients.
const (
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeNotStoreOwner = "NOT_STORE_OWNER"
	ErrCodeInvalidState  = "INVALID_STATE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeUnauthorized:  http.StatusForbidden,
	ErrCodeNotStoreOwner: http.StatusMethodNotAllowed,
	ErrCodeInvalidState:  http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
