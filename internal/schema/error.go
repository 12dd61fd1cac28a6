package schema

import (
	"fmt"
	"sync"
)

type ErrorCode string

const (
	SupplierError        ErrorCode = "SUPPLIER_ERROR"
	TimeoutError         ErrorCode = "TIMEOUT_ERROR"
	ConnectionError      ErrorCode = "CONNECTION_ERROR"
	NotFoundError        ErrorCode = "NOT_FOUND"
	ResolutionError      ErrorCode = "RESOLUTION_FAILED"
	GenerationError      ErrorCode = "GENERATION_ERROR"
	UnexpectedShapeError ErrorCode = "UNEXPECTED_SHAPE"
)

// SupplierResponseError is a failure reported by (or while talking to) an external service.
type SupplierResponseError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode *int      `json:"statusCode,omitempty"`
	Body       *string   `json:"body,omitempty"`
}

type SupplierResponseErrors []SupplierResponseError

func (e SupplierResponseError) Error() string {
	if e.StatusCode != nil {
		return fmt.Sprintf("%s (%d): %s", e.Code, *e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e SupplierResponseError) WithResponse(statusCode int, body string) SupplierResponseError {
	e.StatusCode = &statusCode
	if body != "" {
		e.Body = &body
	}

	return e
}

type errorsBucket struct {
	errors SupplierResponseErrors
	sync.Mutex
}

func NewErrorsBucket() errorsBucket {
	return errorsBucket{
		errors: SupplierResponseErrors{},
	}
}

func (e *errorsBucket) AddErrors(errors SupplierResponseErrors) {
	e.Lock()
	e.errors = append(e.errors, errors...)
	e.Unlock()
}

func (e *errorsBucket) AddError(err SupplierResponseError) {
	e.Lock()
	e.errors = append(e.errors, err)
	e.Unlock()
}

func (e *errorsBucket) Errors() *SupplierResponseErrors {
	return &e.errors
}

func (e *errorsBucket) Empty() bool {
	e.Lock()
	defer e.Unlock()

	return len(e.errors) == 0
}

func NewSupplierError(msg string) SupplierResponseError {
	return SupplierResponseError{
		Code:    SupplierError,
		Message: msg,
	}
}

func NewTimeoutError(msg string) SupplierResponseError {
	return SupplierResponseError{
		Code:    TimeoutError,
		Message: msg,
	}
}

func NewConnectionError(msg string) SupplierResponseError {
	return SupplierResponseError{
		Code:    ConnectionError,
		Message: msg,
	}
}

func NewNotFoundError(msg string) SupplierResponseError {
	return SupplierResponseError{
		Code:    NotFoundError,
		Message: msg,
	}
}

func NewResolutionError(msg string) SupplierResponseError {
	return SupplierResponseError{
		Code:    ResolutionError,
		Message: msg,
	}
}

func NewGenerationError(msg string) SupplierResponseError {
	return SupplierResponseError{
		Code:    GenerationError,
		Message: msg,
	}
}

func NewUnexpectedShapeError(msg string) SupplierResponseError {
	return SupplierResponseError{
		Code:    UnexpectedShapeError,
		Message: msg,
	}
}
