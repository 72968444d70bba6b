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

// NewValidationError creates a validation error. Validation errors are raised
// before any store call is made.
func NewValidationError(message string) *DomainError {
	return NewDomainError("VALIDATION_ERROR", message)
}

// NewConflictError creates a conflict error for uniqueness collisions detected
// by a pre-write read.
func NewConflictError(message string) *DomainError {
	return NewDomainError("CONFLICT", message)
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("CONFLICT", "Resource already exists")
	ErrInvalidInput        = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrNoValidTargets      = NewDomainError("NO_VALID_TARGETS", "No valid targets in bulk operation")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
