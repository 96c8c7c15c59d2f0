package web

import (
	"embed"
	"io/fs"
)

// assets carries the HTML templates and static files into the binary,
// so a deploy is a single file.
//
//go:embed templates static
var assets embed.FS

// templatesFS returns the template tree rooted at templates/.
func templatesFS() fs.FS {
	sub, err := fs.Sub(assets, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
