package storage

import "errors"

// ErrMessageNotFound is returned when a message ID does not exist.
// Lookups, read toggles, and deletes all report missing rows this way.
var ErrMessageNotFound = errors.New("message not found")
