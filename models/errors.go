package models

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorNotFound maps to HTTP 404.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string {
	return e.Message
}

// ErrorValidation maps to HTTP 400 and carries field-to-message
// mappings the way the API reports every business-rule violation.
type ErrorValidation struct {
	Fields map[string][]string
}

func (e ErrorValidation) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return strings.Join(parts, ", ")
}

func NewValidationError(field, message string) ErrorValidation {
	return ErrorValidation{Fields: map[string][]string{field: {message}}}
}

// ErrorUnauthenticated maps to HTTP 401.
type ErrorUnauthenticated struct {
	Message string
}

func (e ErrorUnauthenticated) Error() string {
	return e.Message
}

// ErrorPermissionDenied maps to HTTP 403.
type ErrorPermissionDenied struct {
	Message string
}

func (e ErrorPermissionDenied) Error() string {
	return e.Message
}

// ErrorMethodNotAllowed maps to HTTP 405 for verbs a resource
// explicitly rejects rather than simply not routing.
type ErrorMethodNotAllowed struct {
	Method string
}

func (e ErrorMethodNotAllowed) Error() string {
	return fmt.Sprintf("method %s is not allowed", e.Method)
}
