// Package validator checks struct fields against rules declared in
// `validate` tags and reports every failure with the form input name it
// belongs to, so handlers can flash a field-to-messages map back to the
// form that was submitted.
//
// Rules are separated by semicolons; parameters follow a colon:
//
//	type contactForm struct {
//		Name    string `form:"name" validate:"required"`
//		Email   string `form:"email" validate:"required;email"`
//		Subject string `form:"subject" validate:"required"`
//		Message string `form:"message" validate:"required;max:3000"`
//	}
//
//	if err := validator.ValidateStruct(&f); err != nil {
//		fields := validator.ExtractValidationErrors(err).Fields()
//		// fields: map[email:[must be a valid email address] ...]
//	}
//
// Built-in rules: required, email, min, max, len, between, numeric,
// alphanum, in. RegisterValidator extends the registry with custom
// rules.
//
// Programmatic validation composes the same Rule values directly:
//
//	err := validator.Apply(
//		validator.RequiredString("email", email),
//		validator.ValidEmail("email", email),
//	)
package validator
