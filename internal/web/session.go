package web

import "time"

// Flash levels keyed in SessionData.Flash.
const (
	flashSuccess = "success"
	flashError   = "error"
)

// Rate-limit bucket names inside SessionData.Attempts.
const (
	bucketContact = "contact"
	bucketLogin   = "login"
)

// SessionData is the per-visitor state the session carries between
// requests. The store JSON-encodes it into the session row, so every
// field stays plain data.
//
// Flash, FormErrors and FormOld are one-shot: the next page render
// consumes and clears them. CSRFToken is stable for the session's
// lifetime and rotates on login. Attempts holds the sliding-window
// rate-limit buckets keyed by bucket name.
type SessionData struct {
	CSRFToken  string                 `json:"csrf_token,omitempty"`
	Flash      map[string]string      `json:"flash,omitempty"`
	FormErrors map[string][]string    `json:"form_errors,omitempty"`
	FormOld    map[string]string      `json:"form_old,omitempty"`
	Attempts   map[string][]time.Time `json:"attempts,omitempty"`
}

// Accessors wired into the CSRF and rate-limit middleware configs.

func csrfTokenFromData(d SessionData) string {
	return d.CSRFToken
}

func setCSRFTokenInData(d SessionData, token string) SessionData {
	d.CSRFToken = token
	return d
}

func attemptsFromData(d SessionData, bucket string) []time.Time {
	return d.Attempts[bucket]
}

func setAttemptsInData(d SessionData, bucket string, attempts []time.Time) SessionData {
	if d.Attempts == nil {
		d.Attempts = make(map[string][]time.Time)
	}
	d.Attempts[bucket] = attempts
	return d
}
