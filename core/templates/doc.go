// Package templates provides a layout-aware view renderer on top of
// html/template.
//
// A view is a standalone template file. Its top-level content becomes
// the page body, and {{define}} blocks become named sections:
//
//	{{define "title"}}Projects{{end}}
//	<section>
//		{{range .Projects}}<h2>{{.Name}}</h2>{{end}}
//	</section>
//
// The layout places the body and sections wherever it wants them:
//
//	<html>
//	<head><title>{{section "title"}}</title></head>
//	<body>{{content}}</body>
//	</html>
//
// Rendering happens in two passes: the view (and each of its sections)
// is executed into a buffer first, then the layout runs with content
// and section bound to those buffers. A section the view did not define
// renders as an empty string. Output is fully buffered, so a render
// error never leaves a half-written response body.
//
//	//go:embed templates
//	var files embed.FS
//
//	fsys, _ := fs.Sub(files, "templates")
//	engine, err := templates.New(fsys, templates.WithLayout("layout.html"))
//	...
//	err = engine.Render(w, "projects", data)
package templates
