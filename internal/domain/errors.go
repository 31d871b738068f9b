package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeInvalidServiceCode   = "INVALID_SERVICE_CODE"
	ErrCodeInvalidState         = "INVALID_STATE"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeDuplicateReference   = "DUPLICATE_ORDER_REFERENCE"
)

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

func NewInvalidServiceCodeError(code string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidServiceCode,
		Message: fmt.Sprintf("service code %q is not permitted", code),
	}
}

func NewInvalidStateError(current, expected string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidState,
		Message: fmt.Sprintf("invalid state: order is %s, expected %s", current, expected),
	}
}

func NewNotFoundError(kind string, id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s with ID %d not found", kind, id),
	}
}

func NewDuplicateReferenceError(reference string) *DomainError {
	return &DomainError{
		Code:    ErrCodeDuplicateReference,
		Message: fmt.Sprintf("order reference %s already exists", reference),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
