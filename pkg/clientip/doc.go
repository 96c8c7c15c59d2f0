// Package clientip extracts the real client IP from HTTP requests.
//
// Proxy headers are checked in priority order (CF-Connecting-IP,
// DO-Connecting-IP, X-Forwarded-For, X-Real-IP) before falling back to
// the connection's RemoteAddr. X-Forwarded-For chains resolve to the
// leftmost valid address. Every candidate is parsed with net.ParseIP
// and normalized; unspecified addresses are skipped.
//
//	ip := clientip.GetIP(r)
//
// GetIP never returns an empty string. When no header validates and
// RemoteAddr cannot be parsed, the raw RemoteAddr comes back so logs
// still carry something traceable.
package clientip
