package binder

import "net/http"

// Query creates a binder that populates struct fields from URL query
// parameters.
//
// Supported struct tags:
//   - `query:"name"` - binds to query parameter "name"
//   - `query:"-"`    - skips the field
//
// Fields without a query tag default to the lowercase field name.
// Multi-value parameters bind to slice fields, and pointer fields stay
// nil when the parameter is absent.
//
// Example:
//
//	type inboxQuery struct {
//		Page   int    `query:"page"`
//		Filter string `query:"filter"`
//	}
//
//	var q inboxQuery
//	if err := binder.Query()(r, &q); err != nil {
//		// handle bad request
//	}
func Query() Binder {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
