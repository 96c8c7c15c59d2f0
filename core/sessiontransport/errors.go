package sessiontransport

import "errors"

var (
	// ErrFailedToCreateSession is returned when the fallback anonymous
	// session cannot be created.
	ErrFailedToCreateSession = errors.New("sessiontransport: failed to create session")

	// ErrSessionExpired is returned when a session expires between
	// handling and cookie write.
	ErrSessionExpired = errors.New("sessiontransport: session expired")
)
