package web

// ContactForm is the public contact submission. Binding sanitizes the
// fields in place before validation runs.
type ContactForm struct {
	Name    string `form:"name" sanitize:"trim,collapse_spaces" validate:"required;max:100"`
	Email   string `form:"email" sanitize:"email" validate:"required;email"`
	Subject string `form:"subject" sanitize:"trim,single_line" validate:"required;max:200"`
	Message string `form:"message" sanitize:"text" validate:"required;max:3000"`
}

// Old returns the submitted values keyed by field name, for
// re-rendering the form after a failed validation.
func (f ContactForm) Old() map[string]string {
	return map[string]string{
		"name":    f.Name,
		"email":   f.Email,
		"subject": f.Subject,
		"message": f.Message,
	}
}

// LoginForm is the admin sign-in submission.
type LoginForm struct {
	Email    string `form:"email" sanitize:"email" validate:"required;email"`
	Password string `form:"password" validate:"required"`
}

// Old returns the re-renderable input. The password never comes back.
func (f LoginForm) Old() map[string]string {
	return map[string]string{"email": f.Email}
}
