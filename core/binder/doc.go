// Package binder extracts HTTP request data into Go structs. It covers
// the four places request input lives: JSON bodies, form bodies
// (URL-encoded and multipart), query strings, and path parameters.
//
// Each constructor returns a Binder. Binders only touch fields their
// source actually carries, so they can be layered: bind the query
// string first, then the body, and body values overwrite query values
// for fields present in both.
//
//	type contactForm struct {
//		Name    string `form:"name" json:"name"`
//		Email   string `form:"email" json:"email"`
//		Message string `form:"message" json:"message"`
//	}
//
//	var f contactForm
//	if err := binder.Query()(r, &f); err != nil { ... }
//	if err := binder.Form()(r, &f); err != nil { ... }
//
// Fields convert automatically from their string representation:
// strings, signed and unsigned integers, floats, bools (including
// on/off and yes/no), slices of those, and pointers for optional
// fields. Bound strings are sanitized: NUL bytes and control
// characters are dropped, CRLF pairs become LF, and newlines and tabs
// are preserved for multi-line fields.
//
// Binders guard their parsers. JSON bodies are size-limited, decoded
// strictly, and rejected on trailing data; multipart boundaries are
// validated before parsing.
//
// Errors wrap the package sentinels (ErrFailedToParseJSON,
// ErrFailedToParseForm, ErrFailedToParseQuery, ErrFailedToParsePath,
// ErrUnsupportedMediaType, ErrMissingContentType) so callers can route
// them with errors.Is.
package binder
