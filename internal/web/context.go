package web

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/portfolio/core/binder"
	"github.com/dmitrymomot/portfolio/core/router"
	"github.com/dmitrymomot/portfolio/core/sanitizer"
	"github.com/dmitrymomot/portfolio/core/session"
	"github.com/dmitrymomot/portfolio/core/validator"
	"github.com/dmitrymomot/portfolio/middleware"
)

// Context is the application's request context. It extends the base
// router context with input binding and typed access to the session
// carried by the session middleware.
type Context struct {
	*router.Context
}

// NewContext is the factory registered with the router.
func NewContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{Context: router.NewContext(w, r, params)}
}

// Bind populates v from the request and runs the struct's sanitize and
// validate tags. Sources layer by precedence: the query string binds
// first, then the body (JSON or form by content type) overwrites, so
// body values always win. Validation failures come back as
// validator.ValidationErrors.
func (c *Context) Bind(v any) error {
	r := c.Request()

	mediaType := r.Header.Get("Content-Type")
	if idx := strings.Index(mediaType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}

	if err := binder.Query()(r, v); err != nil {
		return err
	}

	switch {
	case mediaType == "application/json":
		if err := binder.JSON()(r, v); err != nil {
			return err
		}
	case mediaType == "application/x-www-form-urlencoded",
		strings.HasPrefix(mediaType, "multipart/form-data"):
		if err := binder.Form()(r, v); err != nil {
			return err
		}
	}

	if err := sanitizer.SanitizeStruct(v); err != nil {
		return err
	}

	return validator.ValidateStruct(v)
}

// Session returns the session loaded by the session middleware. The
// second return is false when no session middleware ran.
func (c *Context) Session() (session.Session[SessionData], bool) {
	return middleware.GetSession[SessionData](c)
}

// SetSession replaces the request's session so the middleware persists
// the change after the handler returns.
func (c *Context) SetSession(sess session.Session[SessionData]) {
	middleware.SetSession(c, sess)
}

// CSRFToken returns the session's CSRF token for embedding in forms.
// Empty when no session middleware ran.
func (c *Context) CSRFToken() string {
	sess, ok := c.Session()
	if !ok {
		return ""
	}
	return sess.Data.CSRFToken
}

// Flash queues a one-shot notice under the given level for the next
// rendered page.
func (c *Context) Flash(level, message string) {
	sess, ok := c.Session()
	if !ok {
		return
	}

	data := sess.Data
	if data.Flash == nil {
		data.Flash = make(map[string]string)
	}
	data.Flash[level] = message
	sess.SetData(data)
	c.SetSession(sess)
}

// FlashForm queues a failed submission's field errors and input so the
// form can re-render them after the redirect.
func (c *Context) FlashForm(errors map[string][]string, old map[string]string) {
	sess, ok := c.Session()
	if !ok {
		return
	}

	data := sess.Data
	data.FormErrors = errors
	data.FormOld = old
	sess.SetData(data)
	c.SetSession(sess)
}

// Flashes is the one-shot presentation state pulled for a page render.
type Flashes struct {
	Notices map[string]string
	Errors  map[string][]string
	Old     map[string]string
}

// PullFlashes removes and returns the pending flash state. The first
// render after a redirect sees it; subsequent renders do not.
func (c *Context) PullFlashes() Flashes {
	sess, ok := c.Session()
	if !ok {
		return Flashes{}
	}

	out := Flashes{
		Notices: sess.Data.Flash,
		Errors:  sess.Data.FormErrors,
		Old:     sess.Data.FormOld,
	}

	if out.Notices == nil && out.Errors == nil && out.Old == nil {
		return out
	}

	data := sess.Data
	data.Flash = nil
	data.FormErrors = nil
	data.FormOld = nil
	sess.SetData(data)
	c.SetSession(sess)

	return out
}

// IsAuthenticated reports whether the request carries a signed-in
// session.
func (c *Context) IsAuthenticated() bool {
	sess, ok := c.Session()
	return ok && sess.IsAuthenticated()
}
