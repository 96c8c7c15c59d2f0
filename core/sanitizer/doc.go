// Package sanitizer normalizes string input before validation. It
// offers plain functions for programmatic use and a tag-driven
// SanitizeStruct that rewrites struct fields in place, typically run
// between binding and validation.
//
//	type loginForm struct {
//		Email    string `form:"email" sanitize:"email" validate:"required;email"`
//		Password string `form:"password" validate:"required"`
//	}
//
// Sanitizers keep what validation needs to see. Truncation via "max:N"
// exists for display-only fields; fields with a length rule should
// reach the validator untruncated so overlong input fails loudly
// instead of being silently cut.
package sanitizer
