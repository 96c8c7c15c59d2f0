// Package sessiontransport moves session tokens between the server and
// the browser. The Cookie transport stores the session token in a
// signed cookie and resolves it back to a session on each request.
//
// The transport implements the contract the session middleware
// consumes:
//
//	Load(handler.Context) (session.Session[Data], error)
//	Store(handler.Context, session.Session[Data]) error
//
// Load degrades gracefully: a request with no cookie, a tampered
// cookie, or a token pointing at an expired session gets a fresh
// anonymous session instead of an error. Store handles the full
// lifecycle: deleted sessions are purged from the store and the
// browser, live ones are persisted and the cookie refreshed so its
// MaxAge follows the sliding expiration window.
//
// Wiring:
//
//	cookieMgr, _ := cookie.New([]string{secret})
//	store := session.NewMemoryStore[AppData]()
//	manager := session.NewManager(store, session.WithTTL(24*time.Hour))
//	transport := sessiontransport.NewCookie(manager, cookieMgr, "__session")
//
//	r.Use(middleware.Session[*web.Context, AppData](transport))
package sessiontransport
