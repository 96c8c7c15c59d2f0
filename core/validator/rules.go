package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Rule pairs a check with the error reported when the check fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs the given rules and returns the collected failures as
// ValidationErrors, or nil when every rule passes. Use it for
// programmatic validation outside struct tags.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if rule.Check == nil {
			continue
		}
		if !rule.Check() {
			errs.Add(rule.Error)
		}
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// RequiredString fails when the value is empty or whitespace-only.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

// ValidEmail fails unless the value contains an "@" with at least one
// character on each side. Deliberately permissive: the address is only
// used as a reply-to, so deeper verification buys nothing here.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			at := strings.Index(value, "@")
			return at > 0 && at < len(value)-1
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// MinLenString fails when the value is shorter than min characters.
// Length counts runes, not bytes.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}

// MaxLenString fails when the value is longer than max characters.
// Length counts runes, not bytes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
		},
	}
}
