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
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrNotStoreOwner = NewDomainError("NOT_STORE_OWNER", "Unauthorized")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// NewValidationError builds an input error carrying a caller-supplied
// message, used where the API contract names the missing field.
func NewValidationError(message string) *DomainError {
	return NewDomainError("INVALID_INPUT", message)
}
