package catalog

import (
	"errors"
	"net/http"
)

// ValidationError rejects a request whose input is missing or out of range.
// Message names exactly one offending field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NotFoundError reports that a well-formed type filter matched nothing.
// Type holds the filter exactly as the client sent it.
type NotFoundError struct {
	Type string
}

func (e *NotFoundError) Error() string { return "No products found for type: " + e.Type }

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// StatusOf maps a catalog error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, new(*ValidationError)):
		return http.StatusBadRequest
	case errors.As(err, new(*NotFoundError)):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
