package templates

import "errors"

var (
	ErrLayoutParse  = errors.New("templates: failed to parse layout")
	ErrLayoutRender = errors.New("templates: failed to render layout")
	ErrViewNotFound = errors.New("templates: view not found")
	ErrViewParse    = errors.New("templates: failed to parse view")
	ErrViewRender   = errors.New("templates: failed to render view")
)
