package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Proxy headers in priority order. CDN-set headers win over generic
// proxy headers because the CDN terminates the client connection.
var headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP extracts the client IP from proxy headers, falling back to the
// connection's remote address. It never returns an empty string: when
// nothing validates, the raw RemoteAddr comes back as-is.
func GetIP(r *http.Request) string {
	for _, header := range headers {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		// X-Forwarded-For may hold a chain "client, proxy1, proxy2";
		// the leftmost entry is the original client.
		if header == "X-Forwarded-For" {
			if ip := firstValidIP(strings.Split(value, ",")); ip != "" {
				return ip
			}
			continue
		}

		if ip := validIP(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := validIP(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func firstValidIP(candidates []string) string {
	for _, candidate := range candidates {
		if ip := validIP(candidate); ip != "" {
			return ip
		}
	}
	return ""
}

// validIP parses and normalizes a candidate address. Unspecified
// addresses (0.0.0.0, ::) are rejected since they never identify a
// client.
func validIP(value string) string {
	ip := net.ParseIP(strings.TrimSpace(value))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
