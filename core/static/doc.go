// Package static serves embedded static assets through the handler abstraction.
//
// The package wraps http.FileServer with directory listing disabled and
// adapts it to handler.HandlerFunc so asset routes register like any other
// route. It is built for embed.FS: the filesystem is validated at startup
// and a bad embed pattern panics at boot rather than surfacing as 404s.
//
// Typical wiring for assets embedded under an "assets" directory:
//
//	//go:embed assets
//	var assetsFS embed.FS
//
//	r.Get("/static/*", static.FS[*web.Context](
//		assetsFS,
//		static.WithSubFS("assets"),
//		static.WithStripPrefix("/static"),
//	))
package static
