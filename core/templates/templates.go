package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sync"
)

// Engine renders named views inside a shared layout using two passes.
// The first pass executes the view, buffering its body and any sections
// it defines; the second pass executes the layout, which places the
// buffered body via the content function and the sections via the
// section function. Sections the view never defined render as empty
// strings rather than failing.
type Engine struct {
	fsys   fs.FS
	layout string
	ext    string
	funcs  template.FuncMap

	// pristine layout template, cloned per render so the section and
	// content funcs can be bound to the current view's captures
	layoutTmpl *template.Template

	mu    sync.RWMutex
	views map[string]*template.Template
}

// Option configures an Engine.
type Option func(*Engine)

// WithLayout sets the layout file path inside the filesystem.
// Defaults to "layout.html".
func WithLayout(path string) Option {
	return func(e *Engine) {
		if path != "" {
			e.layout = path
		}
	}
}

// WithExtension sets the file extension appended to view names.
// Defaults to ".html".
func WithExtension(ext string) Option {
	return func(e *Engine) {
		if ext != "" {
			e.ext = ext
		}
	}
}

// WithFuncs adds functions available to both views and the layout.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		for name, fn := range funcs {
			e.funcs[name] = fn
		}
	}
}

// New parses the layout from fsys and returns a ready engine. Views are
// parsed lazily on first render and cached.
func New(fsys fs.FS, opts ...Option) (*Engine, error) {
	e := &Engine{
		fsys:   fsys,
		layout: "layout.html",
		ext:    ".html",
		funcs:  template.FuncMap{},
		views:  map[string]*template.Template{},
	}

	for _, opt := range opts {
		opt(e)
	}

	content, err := fs.ReadFile(fsys, e.layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrLayoutParse, e.layout, err)
	}
	layoutTmpl, err := template.New(e.layout).Funcs(e.placeholderFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrLayoutParse, e.layout, err)
	}
	e.layoutTmpl = layoutTmpl

	return e, nil
}

// Render executes the named view and wraps it in the layout, writing
// the final document to w. Nothing is written on error.
func (e *Engine) Render(w io.Writer, view string, data any) error {
	tmpl, err := e.viewTemplate(view)
	if err != nil {
		return err
	}

	// First pass: view body and its named sections, all buffered.
	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, view+e.ext, data); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrViewRender, view, err)
	}

	sections := make(map[string]template.HTML)
	for _, t := range tmpl.Templates() {
		name := t.Name()
		if name == view+e.ext || t.Tree == nil {
			continue
		}
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
			return fmt.Errorf("%w: %q section %q: %w", ErrViewRender, view, name, err)
		}
		sections[name] = template.HTML(buf.String())
	}

	// Second pass: layout with the captures bound. The pristine layout
	// is never executed, so cloning stays legal.
	layout, err := e.layoutTmpl.Clone()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLayoutRender, err)
	}
	layout = layout.Funcs(template.FuncMap{
		"content": func() template.HTML {
			return template.HTML(body.String())
		},
		"section": func(name string) template.HTML {
			return sections[name]
		},
	})

	var out bytes.Buffer
	if err := layout.ExecuteTemplate(&out, e.layout, data); err != nil {
		return fmt.Errorf("%w: %w", ErrLayoutRender, err)
	}

	_, err = w.Write(out.Bytes())
	return err
}

// viewTemplate returns the parsed view, parsing and caching it on first
// use.
func (e *Engine) viewTemplate(view string) (*template.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.views[view]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.views[view]; ok {
		return tmpl, nil
	}

	// Files are read and parsed by full path so views can live in
	// subdirectories without base-name collisions.
	path := view + e.ext
	content, err := fs.ReadFile(e.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrViewNotFound, view, err)
	}
	tmpl, err = template.New(path).Funcs(e.funcs).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrViewParse, view, err)
	}

	e.views[view] = tmpl
	return tmpl, nil
}

// placeholderFuncs lets the layout parse before the per-render section
// and content closures exist.
func (e *Engine) placeholderFuncs() template.FuncMap {
	funcs := template.FuncMap{
		"content": func() template.HTML { return "" },
		"section": func(string) template.HTML { return "" },
	}
	for name, fn := range e.funcs {
		funcs[name] = fn
	}
	return funcs
}
