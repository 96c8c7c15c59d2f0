// Package session provides server-side sessions with typed
// application data. A Session carries a stable ID, a rotating client
// token, an optional user binding, and a Data payload the application
// defines; the Manager decides when sessions are persisted and for how
// long they live.
//
//	type AppData struct {
//		CSRFToken string            `json:"csrf_token"`
//		Flash     map[string]string `json:"flash,omitempty"`
//	}
//
//	store := session.NewMemoryStore[AppData]()
//	manager := session.NewManager(store,
//		session.WithTTL(12*time.Hour),
//		session.WithTouchInterval(time.Minute),
//	)
//
// Sessions expire on idleness: every save slides the expiration window
// forward, throttled by the touch interval. Authenticate rotates the
// token so a token observed before login is worthless after it; the
// session ID stays stable for the row's lifetime. Logout marks the
// session deleted, and the next save removes it from the store.
//
// Store implementations persist sessions however they like (the app
// ships a SQLite-backed store; MemoryStore covers tests). Transports
// move the token between client and server; see the sessiontransport
// package for the cookie transport.
package session
