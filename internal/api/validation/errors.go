package validation

import "errors"

// ErrMalformedPayload is returned when a payload is not a JSON object
var ErrMalformedPayload = errors.New("malformed payload")

// FieldErrors maps a JSON field name to its violation messages
type FieldErrors map[string][]string

// Add appends a violation message for the field
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether the field already has a violation
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}
