package static

import (
	"io/fs"
	"net/http"

	"github.com/dmitrymomot/portfolio/core/handler"
)

// fsConfig holds configuration options for fs.FS serving.
type fsConfig struct {
	fs          fs.FS
	stripPrefix string
	subPath     string
}

// FSOption is a functional option type for configuring FS serving behavior.
type FSOption func(*fsConfig)

// WithStripPrefix removes the given prefix from the URL path before serving files.
//
// For example, if embedded files are mounted at "/static/" but stored without
// that prefix, use WithStripPrefix("/static") so "/static/site.css" serves "site.css".
func WithStripPrefix(prefix string) FSOption {
	return func(c *fsConfig) {
		c.stripPrefix = prefix
	}
}

// WithSubFS serves files from a subdirectory within the fs.FS.
// This is useful when the embedded filesystem nests its files under a
// directory, as embed.FS does with the embed pattern's path.
//
// The path parameter should use forward slashes regardless of OS.
func WithSubFS(path string) FSOption {
	return func(c *fsConfig) {
		c.subPath = path
	}
}

// FS creates a handler that serves files from an fs.FS (including embed.FS).
//
// The handler is designed for static assets compiled into the binary with
// Go's embed directive. Directory listing is disabled: a directory resolves
// only when it contains an index.html. Range requests and conditional
// headers are handled by the underlying http.FileServer.
//
// Panics at startup if the sub-path specified in WithSubFS is invalid or
// the filesystem root is not accessible, so a broken embed pattern fails
// at boot instead of returning 404s in production.
//
// Example:
//
//	//go:embed assets
//	var assetsFS embed.FS
//
//	r.Get("/static/*", static.FS[*web.Context](
//		assetsFS,
//		static.WithSubFS("assets"),
//		static.WithStripPrefix("/static"),
//	))
func FS[C handler.Context](fsys fs.FS, opts ...FSOption) handler.HandlerFunc[C] {
	config := &fsConfig{
		fs: fsys,
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.subPath != "" {
		sub, err := fs.Sub(fsys, config.subPath)
		if err != nil {
			panic("static.FS: invalid sub-path '" + config.subPath + "': " + err.Error())
		}
		config.fs = sub
	}

	if _, err := config.fs.Open("."); err != nil {
		panic("static.FS: filesystem is not accessible: " + err.Error())
	}

	fileServer := http.FileServer(neuteredFileSystem{fs: http.FS(config.fs)})

	if config.stripPrefix != "" {
		fileServer = http.StripPrefix(config.stripPrefix, fileServer)
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			fileServer.ServeHTTP(w, r)
			return nil
		}
	}
}
