package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":            Trim,
		"lower":           ToLower,
		"upper":           ToUpper,
		"title":           ToTitle,
		"trim_lower":      TrimToLower,
		"email":           NormalizeEmail,
		"single_line":     SingleLine,
		"collapse_spaces": CollapseWhitespace,
		"strip_html":      StripHTML,
		"no_control":      RemoveControlChars,

		// Composites for the usual form fields.
		"name": func(s string) string {
			return ToTitle(CollapseWhitespace(s))
		},
		"text": func(s string) string {
			return RemoveControlChars(strings.TrimSpace(s))
		},
	}
)

// RegisterSanitizer adds a custom sanitizer to the tag registry,
// replacing any existing sanitizer with the same name.
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct rewrites string fields in place according to their
// `sanitize` tags. Sanitizers are comma-separated and applied left to
// right:
//
//	type contactForm struct {
//		Name    string `form:"name" sanitize:"trim,collapse_spaces"`
//		Email   string `form:"email" sanitize:"email"`
//		Subject string `form:"subject" sanitize:"trim,single_line"`
//		Message string `form:"message" sanitize:"text"`
//	}
//
// The special "max:N" entry truncates to N runes. Nested structs are
// walked regardless of tags; strings without a tag are left alone.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return errors.New("sanitizer: must pass a pointer to struct")
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return errors.New("sanitizer: must pass a pointer to struct")
	}

	return sanitizeStructRecursive(rv)
}

func sanitizeStructRecursive(rv reflect.Value) error {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag == "" {
				continue
			}
			field.SetString(applySanitizers(field.String(), tag))

		case reflect.Pointer:
			if field.IsNil() {
				continue
			}
			elem := field.Elem()
			if elem.Kind() == reflect.String && tag != "" {
				elem.SetString(applySanitizers(elem.String(), tag))
			} else if elem.Kind() == reflect.Struct {
				if err := sanitizeStructRecursive(elem); err != nil {
					return err
				}
			}

		case reflect.Struct:
			if err := sanitizeStructRecursive(field); err != nil {
				return err
			}

		case reflect.Slice:
			if tag != "" && field.Type().Elem().Kind() == reflect.String {
				for j := range field.Len() {
					elem := field.Index(j)
					elem.SetString(applySanitizers(elem.String(), tag))
				}
			}
		}
	}

	return nil
}

func applySanitizers(value string, tag string) string {
	result := value

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range strings.Split(tag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(name, "max:"); ok {
			var maxLen int
			_, _ = fmt.Sscanf(rest, "%d", &maxLen)
			if maxLen > 0 {
				result = MaxLength(result, maxLen)
			}
			continue
		}

		if fn, ok := registry[name]; ok {
			result = fn(result)
		}
	}

	return result
}
