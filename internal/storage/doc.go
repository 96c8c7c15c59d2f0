// Package storage is the SQLite persistence layer: a pooled database
// handle with schema bootstrap, the contact-message repository, and the
// session store backing core/session.
//
// The whole site lives in one database file. Connections are pooled;
// every connection gets WAL mode, a busy timeout, and the idempotent
// schema script on first use, so there is no separate migration step.
package storage
