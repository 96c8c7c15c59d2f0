package binder

import "net/http"

// Binder populates v, which must be a non-nil pointer to a struct, with
// data extracted from an HTTP request. Implementations read a single
// source (JSON body, form body, query string, or path parameters) and
// leave fields untouched when the source carries no value for them, so
// binders can be layered to combine sources.
type Binder func(r *http.Request, v any) error
