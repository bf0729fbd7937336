// Package errs defines the domain errors shared by services and the HTTP layer.
//
// Services return DatabaseError, ResourceNotFoundError and InvalidInputError.
// Request validators return RequestError, a ready-made HTTP response with a
// status, a machine-readable code and a details payload.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// DatabaseError wraps a known database error.
type DatabaseError struct {
	Message string
	Err     error
}

func (e *DatabaseError) Error() string { return "database error: " + e.Message }

func (e *DatabaseError) Unwrap() error { return e.Err }

// ResourceNotFoundError reports a missing entity.
type ResourceNotFoundError struct {
	Resource string
	ID       string
}

func (e *ResourceNotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// NewResourceNotFound builds a ResourceNotFoundError.
func NewResourceNotFound(resource, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: resource, ID: id}
}

// InvalidInputError reports input that failed validation.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// RequestError is a canned HTTP error response.
type RequestError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *RequestError) Error() string { return e.Message }

// BadRequest builds a 400 response.
func BadRequest(message string, details map[string]any) *RequestError {
	return &RequestError{
		Status:  http.StatusBadRequest,
		Code:    codeFromStatus(http.StatusBadRequest),
		Message: message,
		Details: details,
	}
}

// NotFound builds a 404 response for a resource type. resourceID may be nil
// when the resource could not be identified.
func NotFound(resourceType string, resourceID *string) *RequestError {
	var id any
	if resourceID != nil {
		id = *resourceID
	}
	return &RequestError{
		Status:  http.StatusNotFound,
		Code:    codeFromStatus(http.StatusNotFound),
		Message: resourceType + " not found",
		Details: map[string]any{
			"resource_type": resourceType,
			"resource_id":   id,
		},
	}
}

// Unauthorized builds a 401 response.
func Unauthorized(message string) *RequestError {
	return &RequestError{
		Status:  http.StatusUnauthorized,
		Code:    codeFromStatus(http.StatusUnauthorized),
		Message: message,
	}
}

// TooManyRequests builds a 429 response.
func TooManyRequests() *RequestError {
	return &RequestError{
		Status:  http.StatusTooManyRequests,
		Code:    codeFromStatus(http.StatusTooManyRequests),
		Message: "rate limit exceeded",
	}
}

// codeFromStatus turns "Bad Request" into "BAD_REQUEST".
func codeFromStatus(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// IsKnownDatabaseError reports whether err carries a PostgreSQL server error.
func IsKnownDatabaseError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	pgErr, ok := IsKnownDatabaseError(err)
	return ok && pgErr.Code == "23505"
}

// IsInvalidTextRepresentation reports whether err is a malformed literal, such as
// a non-UUID string compared against a uuid column.
func IsInvalidTextRepresentation(err error) bool {
	pgErr, ok := IsKnownDatabaseError(err)
	return ok && pgErr.Code == "22P02"
}
