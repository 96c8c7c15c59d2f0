package validator

import (
	"errors"
	"strings"
)

// ValidationError describes a single failed check on a single field.
// Field carries the form input name, so errors can be rendered next to
// the inputs that produced them.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every failed check from one validation run.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, err := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Add appends a failed check to the collection.
func (e *ValidationErrors) Add(err ValidationError) {
	*e = append(*e, err)
}

// IsEmpty reports whether the run produced no failures.
func (e ValidationErrors) IsEmpty() bool {
	return len(e) == 0
}

// Fields groups messages by field name, preserving the order checks ran
// in. The result is what form templates consume to show inline errors.
func (e ValidationErrors) Fields() map[string][]string {
	if len(e) == 0 {
		return nil
	}

	fields := make(map[string][]string, len(e))
	for _, err := range e {
		fields[err.Field] = append(fields[err.Field], err.Message)
	}
	return fields
}

// IsValidationError reports whether err is, or wraps, a ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors unwraps err to its ValidationErrors, returning
// nil when err carries none.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
