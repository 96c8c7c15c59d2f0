// Package server wraps http.Server with graceful shutdown, sane timeout
// defaults, and environment-driven configuration.
//
// The zero-config path:
//
//	err := server.Run(ctx, ":8080", r)
//
// The configured path, suitable for errgroup coordination with other
// long-running components:
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, r))
//	g.Go(cleanupLoop(ctx))
//	return g.Wait()
//
// Canceling the context triggers graceful shutdown bounded by the
// configured shutdown timeout; in-flight requests get a chance to finish.
//
// TLS is optional and file-based: set SERVER_TLS_CERT_FILE and
// SERVER_TLS_KEY_FILE to serve HTTPS with hardened defaults, or leave
// them empty when TLS terminates at a proxy in front of the service.
package server
