package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// Path creates a binder that populates struct fields from URL path
// parameters. The router owns path extraction, so the caller supplies
// an extractor that looks up a named parameter for the request.
//
// Supported struct tags:
//   - `path:"name"` - binds to path parameter "name"
//   - `path:"-"`    - skips the field
//
// Fields without a path tag are ignored. Parameters the extractor
// resolves to an empty string leave the field untouched.
//
// Example:
//
//	type messageRequest struct {
//		ID int64 `path:"id"`
//	}
//
//	bind := binder.Path(func(r *http.Request, name string) string {
//		return ctx.Param(name)
//	})
func Path(extractor func(r *http.Request, fieldName string) string) Binder {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: nil path extractor", ErrFailedToParsePath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
		}

		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}

		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)

			if !field.CanSet() {
				continue
			}

			tag := fieldType.Tag.Get("path")
			if tag == "" || tag == "-" {
				continue
			}

			paramName := tag
			if idx := strings.Index(tag, ","); idx != -1 {
				paramName = tag[:idx]
			}
			if paramName == "" {
				continue
			}

			value := extractor(r, paramName)
			if value == "" {
				continue
			}

			if err := setFieldValue(field, fieldType.Type, []string{value}); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, fieldType.Name, err)
			}
		}

		return nil
	}
}
