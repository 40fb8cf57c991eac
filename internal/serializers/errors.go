// Package serializers maps domain entities to their wire representation and
// parses inbound payloads into validated inputs.
package serializers

import (
	"fmt"
	"sort"
	"strings"
)

// NonFieldErrors is the key used for errors that do not belong to one field.
const NonFieldErrors = "non_field_errors"

// Field-level messages.
const (
	msgRequired    = "This field is required."
	msgBlank       = "This field may not be blank."
	msgNotString   = "Not a valid string."
	msgNotInteger  = "A valid integer is required."
	msgInvalidJSON = "Malformed JSON body."
	msgNotObject   = "Invalid data. Expected a dictionary."
	msgInvalidDate = "Datetime has wrong format. Use RFC 3339 or YYYY-MM-DD."
	msgNullChar    = "Null characters are not allowed."
	msgMinID       = "Ensure this value is greater than or equal to 1."
	maxNameLength  = 255
)

// ValidationError collects every problem found in one payload, keyed by field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a message against a field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Err returns e when it holds at least one message, nil otherwise.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}
