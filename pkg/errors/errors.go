// Package errors defines custom error types and error handling utilities for
// the bomsight analytics service. Errors carry a machine-readable code, an
// HTTP status and optional detail metadata so the HTTP layer can render them
// without inspecting error strings.
package errors

import (
	"fmt"
	"net/http"

	"github.com/openbom/bomsight/pkg/constants"
)

// AppError represents a structured application error.
type AppError struct {
	Code        constants.ErrorCode
	Message     string
	Description string
	Details     map[string]string
	cause       error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.cause
}

// HTTPStatus maps the error code to an HTTP status code.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case constants.ErrCodeInvalidRequest, constants.ErrCodeInvalidPopulation:
		return http.StatusBadRequest
	case constants.ErrCodeNotFound:
		return http.StatusNotFound
	case constants.ErrCodeFixtureUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithError attaches a cause to a copy of the error. The receiver is not
// mutated so the predefined errors below stay safe to share.
func (e *AppError) WithError(cause error) *AppError {
	clone := *e
	clone.cause = cause
	return &clone
}

// WithDetail attaches a detail entry to a copy of the error.
func (e *AppError) WithDetail(key, value string) *AppError {
	clone := *e
	clone.Details = make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

// New creates a new AppError.
func New(code constants.ErrorCode, message, description string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Description: description,
	}
}

// ================================================================================
// Predefined Errors
// ================================================================================

var (
	// ErrInvalidRequest indicates a malformed or incomplete request.
	ErrInvalidRequest = New(
		constants.ErrCodeInvalidRequest,
		"invalid request",
		"The request is missing a required parameter or includes an invalid parameter value.",
	)

	// ErrInvalidPopulation indicates a normalizer was constructed from an
	// empty sample population.
	ErrInvalidPopulation = New(
		constants.ErrCodeInvalidPopulation,
		"normalizer requires a non-empty population",
		"A min-max normalizer cannot be fitted to an empty sample; rebuild it after the population loads.",
	)

	// ErrInternalServer indicates an unexpected internal failure.
	ErrInternalServer = New(
		constants.ErrCodeServerError,
		"internal server error",
		"The service encountered an unexpected condition that prevented it from fulfilling the request.",
	)
)

// ErrEntityNotFound creates a not-found error for an entity id.
func ErrEntityNotFound(id string) *AppError {
	return New(
		constants.ErrCodeNotFound,
		fmt.Sprintf("entity not found: %s", id),
		"No metrics record exists for the requested entity in the loaded population.",
	).WithDetail("entity_id", id)
}

// ErrFixtureUnavailable creates an error for a fixture document that could
// not be fetched or decoded.
func ErrFixtureUnavailable(doc string, cause error) *AppError {
	return New(
		constants.ErrCodeFixtureUnavailable,
		fmt.Sprintf("fixture document unavailable: %s", doc),
		"The fixture source did not supply a readable document; aggregation proceeds with an empty collection.",
	).WithDetail("document", doc).WithError(cause)
}

// ================================================================================
// Error Inspection Utilities
// ================================================================================

// AsAppError attempts to cast an error to *AppError.
func AsAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}

// CodeOf returns the error code of an AppError, or ErrCodeServerError for
// any other error.
func CodeOf(err error) constants.ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return constants.ErrCodeServerError
}

// IsNotFound reports whether the error is an entity not-found error.
func IsNotFound(err error) bool {
	return CodeOf(err) == constants.ErrCodeNotFound
}
