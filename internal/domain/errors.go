package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound marks an entity lookup that resolved to nothing. The
// repository reports it distinctly from other failures so callers can map
// it to a 404 instead of a 500.
var ErrNotFound = errors.New("not found")

// ValidationError carries structured validation detail, keyed by field.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates a validation error with a single field message.
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{Fields: map[string][]string{}}
	e.Add(field, message)
	return e
}

// Add appends a message for a field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no field messages were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
