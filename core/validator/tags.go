package validator

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// ValidatorFunc builds a Rule for a field value. Params carry the
// colon-separated arguments from the tag, e.g. "max:3000" yields
// params ["3000"].
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"email":    emailValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"len":      lenValidator,
		"between":  betweenValidator,
		"numeric":  numericValidator,
		"alphanum": alphanumValidator,
		"in":       inValidator,
	}
)

// RegisterValidator adds a custom validator to the tag registry,
// replacing any existing validator with the same name.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct runs the checks declared in `validate` struct tags and
// returns ValidationErrors listing every failure, or nil when the value
// passes. Rules within a tag are separated by semicolons and take
// colon-separated parameters:
//
//	type contactForm struct {
//		Name    string `form:"name" validate:"required"`
//		Email   string `form:"email" validate:"required;email"`
//		Message string `form:"message" validate:"required;max:3000"`
//	}
//
// Error fields are named after the form tag when present, then the json
// tag, then the lowercase Go field name, matching how binders resolve
// input names.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}

	var errs ValidationErrors
	validateStructRecursive(rv, "", &errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStructRecursive(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		structField := rt.Field(i)
		tag := structField.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		fieldPath := displayName(structField)
		if prefix != "" {
			fieldPath = prefix + "." + fieldPath
		}

		// Untagged nested structs are walked for tagged fields inside.
		if field.Kind() == reflect.Struct && tag == "" {
			validateStructRecursive(field, fieldPath, errs)
			continue
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if tag != "" {
					validateField(fieldPath, field, tag, errs)
				}
				continue
			}
			elem := field.Elem()
			if elem.Kind() == reflect.Struct && tag == "" {
				validateStructRecursive(elem, fieldPath, errs)
			} else if tag != "" {
				validateField(fieldPath, elem, tag, errs)
			}
			continue
		}

		if tag == "" {
			continue
		}

		validateField(fieldPath, field, tag, errs)
	}
}

// displayName resolves the error-reporting name for a field, preferring
// the names binders use over the Go identifier.
func displayName(field reflect.StructField) string {
	for _, tagName := range []string{"form", "json"} {
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		if idx := strings.Index(tag, ","); idx != -1 {
			tag = tag[:idx]
		}
		if tag != "" {
			return tag
		}
	}
	return strings.ToLower(field.Name)
}

func validateField(fieldPath string, field reflect.Value, tag string, errs *ValidationErrors) {
	rules := strings.Split(tag, ";")

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, ruleStr := range rules {
		ruleStr = strings.TrimSpace(ruleStr)
		if ruleStr == "" {
			continue
		}

		parts := strings.SplitN(ruleStr, ":", 2)
		ruleName := strings.TrimSpace(parts[0])

		var params []string
		if len(parts) > 1 {
			paramStr := strings.TrimSpace(parts[1])
			if paramStr != "" {
				params = strings.Split(paramStr, ",")
				for i := range params {
					params[i] = strings.TrimSpace(params[i])
				}
			}
		}

		if validatorFn, ok := registry[ruleName]; ok {
			rule := validatorFn(fieldPath, field, params)
			if !rule.Check() {
				errs.Add(rule.Error)
			}
		}
	}
}

// Built-in validators.

func requiredValidator(field string, value reflect.Value, params []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

func emailValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return passRule()
	}
	return ValidEmail(field, value.String())
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return passRule()
	}

	switch value.Kind() {
	case reflect.String:
		min, _ := strconv.Atoi(params[0])
		return MinLenString(field, value.String(), min)
	case reflect.Slice, reflect.Array:
		min, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool { return value.Len() >= min },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must have at least %d items", min),
			},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		min, _ := strconv.ParseInt(params[0], 10, 64)
		return Rule{
			Check: func() bool { return value.Int() >= min },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %d", min),
			},
		}
	case reflect.Float32, reflect.Float64:
		min, _ := strconv.ParseFloat(params[0], 64)
		return Rule{
			Check: func() bool { return value.Float() >= min },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %g", min),
			},
		}
	default:
		return passRule()
	}
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return passRule()
	}

	switch value.Kind() {
	case reflect.String:
		max, _ := strconv.Atoi(params[0])
		return MaxLenString(field, value.String(), max)
	case reflect.Slice, reflect.Array:
		max, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool { return value.Len() <= max },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must have at most %d items", max),
			},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		max, _ := strconv.ParseInt(params[0], 10, 64)
		return Rule{
			Check: func() bool { return value.Int() <= max },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at most %d", max),
			},
		}
	case reflect.Float32, reflect.Float64:
		max, _ := strconv.ParseFloat(params[0], 64)
		return Rule{
			Check: func() bool { return value.Float() <= max },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at most %g", max),
			},
		}
	default:
		return passRule()
	}
}

func lenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return passRule()
	}

	expected, _ := strconv.Atoi(params[0])

	switch value.Kind() {
	case reflect.String:
		return Rule{
			Check: func() bool { return len(value.String()) == expected },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be exactly %d characters long", expected),
			},
		}
	case reflect.Slice, reflect.Array:
		return Rule{
			Check: func() bool { return value.Len() == expected },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must have exactly %d items", expected),
			},
		}
	default:
		return passRule()
	}
}

func betweenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 2 {
		return passRule()
	}

	switch value.Kind() {
	case reflect.String:
		min, _ := strconv.Atoi(params[0])
		max, _ := strconv.Atoi(params[1])
		return Rule{
			Check: func() bool {
				l := len(value.String())
				return l >= min && l <= max
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be between %d and %d characters long", min, max),
			},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		min, _ := strconv.ParseInt(params[0], 10, 64)
		max, _ := strconv.ParseInt(params[1], 10, 64)
		return Rule{
			Check: func() bool {
				v := value.Int()
				return v >= min && v <= max
			},
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be between %d and %d", min, max),
			},
		}
	default:
		return passRule()
	}
}

func numericValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return passRule()
	}

	s := value.String()
	return Rule{
		Check: func() bool {
			if s == "" {
				return false
			}
			for _, r := range s {
				if !unicode.IsDigit(r) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must contain only digits",
		},
	}
}

func alphanumValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return passRule()
	}

	s := value.String()
	return Rule{
		Check: func() bool {
			if s == "" {
				return false
			}
			for _, r := range s {
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must contain only letters and digits",
		},
	}
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) == 0 {
		return passRule()
	}

	s := value.String()
	return Rule{
		Check: func() bool {
			return slices.Contains(params, s)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(params, ", ")),
		},
	}
}

// passRule is returned for type mismatches and missing parameters, so
// misapplied tags never fail a value they cannot judge.
func passRule() Rule {
	return Rule{Check: func() bool { return true }}
}
