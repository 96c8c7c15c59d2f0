package middleware

import (
	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/pkg/clientip"
)

type clientIPKey struct{}

// ClientIP resolves the real client IP once per request and stores it
// in the context for handlers and downstream middleware.
func ClientIP[C handler.Context]() handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			ctx.SetValue(clientIPKey{}, clientip.GetIP(ctx.Request()))
			return next(ctx)
		}
	}
}

// GetClientIP retrieves the client IP from the request context.
func GetClientIP(ctx handler.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPKey{}).(string)
	return ip, ok
}
