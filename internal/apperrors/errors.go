package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that the store found no row matching the request.
var ErrNotFound = errors.New("resource not found")

// ErrDuplicate indicates that a write violated a unique constraint in the store.
var ErrDuplicate = errors.New("resource already exists")

// Kind is one of the closed set of error categories the API speaks.
type Kind string

const (
	KindBadRequest          Kind = "BadRequest"
	KindUnauthorized        Kind = "Unauthorized"
	KindForbidden           Kind = "Forbidden"
	KindNotFound            Kind = "NotFound"
	KindConflict            Kind = "Conflict"
	KindInternalServerError Kind = "InternalServerError"
)

// Status returns the HTTP status code associated with the kind.
func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Machine-readable error codes returned to clients.
const (
	CodeValidationError       = "VALIDATION_ERROR"
	CodeInvalidToken          = "INVALID_TOKEN"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeForbidden             = "FORBIDDEN"
	CodeAccountNotFound       = "ACCOUNT_NOT_FOUND"
	CodeRouteNotFound         = "ROUTE_NOT_FOUND"
	CodeResourceNotFound      = "RESOURCE_NOT_FOUND"
	CodeUsernameAlreadyExists = "USERNAME_ALREADY_EXISTS"
	CodeDuplicateResource     = "DUPLICATE_RESOURCE"
	CodeInternalServerError   = "INTERNAL_SERVER_ERROR"

	// CodeTooManyRequests is written by the rate limiter, outside the kinds above.
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
)

const defaultInternalErrorMessage = "Something went wrong"

// AppError is a taxonomy error: a kind, a stable code, a human message and
// optional structured details.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]any
	// Err is the underlying cause, if any. It is never rendered to clients.
	Err error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error's kind.
func (e *AppError) StatusCode() int {
	return e.Kind.Status()
}

func newAppError(kind Kind, code, message string, details map[string]any) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Details: details}
}

// BadRequest is raised by input validation.
func BadRequest(code, message string, details map[string]any) *AppError {
	return newAppError(KindBadRequest, code, message, details)
}

// Unauthorized is raised by authentication.
func Unauthorized(code, message string, details map[string]any) *AppError {
	return newAppError(KindUnauthorized, code, message, details)
}

// Forbidden is raised when the caller's role does not permit the operation.
func Forbidden(code, message string, details map[string]any) *AppError {
	return newAppError(KindForbidden, code, message, details)
}

// NotFound is raised when the addressed resource does not exist.
func NotFound(code, message string, details map[string]any) *AppError {
	return newAppError(KindNotFound, code, message, details)
}

// Conflict is raised when a write collides with existing state.
func Conflict(code, message string, details map[string]any) *AppError {
	return newAppError(KindConflict, code, message, details)
}

// InternalServerError wraps unexpected failures. An empty message becomes
// "Something went wrong".
func InternalServerError(message string, details map[string]any) *AppError {
	if message == "" {
		message = defaultInternalErrorMessage
	}
	return newAppError(KindInternalServerError, CodeInternalServerError, message, details)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Classify turns any error into a taxonomy error for the response boundary.
// Typed errors pass through; store unique violations become Conflict; anything
// else becomes InternalServerError with the raw message under originalError.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, ErrDuplicate) {
		c := Conflict(CodeDuplicateResource, "Resource already exists", map[string]any{"originalError": err.Error()})
		c.Err = err
		return c
	}
	if errors.Is(err, ErrNotFound) {
		nf := NotFound(CodeResourceNotFound, "Resource not found", nil)
		nf.Err = err
		return nf
	}
	ie := InternalServerError("Unexpected error occurred", map[string]any{"originalError": err.Error()})
	ie.Err = err
	return ie
}
