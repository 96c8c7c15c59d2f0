// Package cookie manages HTTP cookies with HMAC-SHA256 signing and
// secret rotation. The session transport uses it to keep the session
// token tamper-evident without storing anything sensitive client-side.
//
//	manager, err := cookie.New([]string{secret})
//	if err != nil { ... }
//
//	// Signed round-trip
//	_ = manager.SetSigned(w, "portfolio_session", token)
//	token, err := manager.GetSigned(r, "portfolio_session")
//
// Defaults are Path "/", HttpOnly, and SameSite Lax. Configure from the
// environment via Config and NewFromConfig; COOKIE_SECRETS accepts a
// comma-separated list where the first secret signs new cookies and the
// rest still verify, so rotation never logs users out.
package cookie
